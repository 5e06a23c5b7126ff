package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/jackc/pgx/v5"
)

// PgSettingsRepository implements SettingsRepository using pgx. The table
// holds a single row.
type PgSettingsRepository struct{}

// NewPgSettingsRepository creates a new PgSettingsRepository.
func NewPgSettingsRepository() *PgSettingsRepository {
	return &PgSettingsRepository{}
}

func (r *PgSettingsRepository) Load(ctx context.Context, db DBTX) (*domain.Settings, error) {
	var doc []byte
	err := db.QueryRow(ctx, `SELECT "document" FROM launcher_settings WHERE "id" = 1`).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s, err := domain.DecodeSettings(doc)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgSettingsRepository) Save(ctx context.Context, db DBTX, settings domain.Settings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = db.Exec(ctx,
		`INSERT INTO launcher_settings ("id", "language", "document", "updatedAt")
		 VALUES (1, $1, $2, now())
		 ON CONFLICT ("id") DO UPDATE
		 SET "language" = EXCLUDED."language", "document" = EXCLUDED."document", "updatedAt" = now()`,
		settings.Language, doc)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
