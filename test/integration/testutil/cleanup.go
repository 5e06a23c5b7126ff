//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll truncates every launcher table.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"event_outbox",
		"catalog_snapshots",
		"launcher_settings",
	}
	for _, table := range tables {
		if _, err := env.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			env.t.Logf("CleanAll: truncate %s: %v", table, err)
		}
	}
}
