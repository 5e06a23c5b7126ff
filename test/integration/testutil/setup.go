//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bsglauncher/webui/internal/app"
	"github.com/bsglauncher/webui/internal/auth"
	"github.com/bsglauncher/webui/internal/catalog"
	"github.com/bsglauncher/webui/internal/guard"
	"github.com/bsglauncher/webui/internal/notify"
	"github.com/bsglauncher/webui/internal/poller"
	"github.com/bsglauncher/webui/internal/projection"
	"github.com/bsglauncher/webui/internal/provider"
	"github.com/bsglauncher/webui/internal/repository"
	"github.com/bsglauncher/webui/internal/service"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	TestHostSecret = "integration-test-host-secret-0123456789"
	TestDBHost     = "localhost"
	TestDBPort     = 5435
	TestDBUser     = "launcher"
	TestDBPass     = "launcher"
	TestDBName     = "launcher_test"
)

// TestEnv holds all resources for an integration test.
type TestEnv struct {
	Server  *httptest.Server
	Pool    *pgxpool.Pool
	JWTMgr  *auth.JWTManager
	Host    *FakeHost
	Catalog *catalog.Catalog
	Poller  *poller.SnapshotPoller
	Outbox  *notify.OutboxNotifier

	Snapshots repository.SnapshotRepository
	Settings  repository.SettingsRepository
	t         *testing.T
}

var (
	sharedPool *pgxpool.Pool
	poolOnce   sync.Once
	poolErr    error
)

func testDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		TestDBUser, TestDBPass, TestDBHost, TestDBPort, TestDBName)
}

func bootstrapDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		TestDBUser, TestDBPass, TestDBHost, TestDBPort, "launcher")
}

func ensureTestDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bPool, err := pgxpool.New(ctx, bootstrapDSN())
	if err != nil {
		return fmt.Errorf("connect bootstrap db: %w", err)
	}
	defer bPool.Close()

	var exists bool
	err = bPool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", TestDBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check db exists: %w", err)
	}

	if !exists {
		if _, err = bPool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", TestDBName)); err != nil {
			return fmt.Errorf("create test db: %w", err)
		}
	}
	return nil
}

func runMigrations() error {
	sourceURL := "file://" + filepath.ToSlash(filepath.Join(findProjectRoot(), "db", "migrations"))

	m, err := newMigrate(sourceURL, testDSN())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func findProjectRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

func getSharedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	poolOnce.Do(func() {
		if err := ensureTestDB(); err != nil {
			poolErr = err
			return
		}
		if err := runMigrations(); err != nil {
			poolErr = fmt.Errorf("run migrations: %w", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		poolCfg, err := pgxpool.ParseConfig(testDSN())
		if err != nil {
			poolErr = fmt.Errorf("parse pool config: %w", err)
			return
		}
		poolCfg.MaxConns = 5
		poolCfg.MinConns = 1

		sharedPool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			poolErr = fmt.Errorf("create pool: %w", err)
		}
	})

	if poolErr != nil {
		t.Fatalf("failed to initialize test pool: %v", poolErr)
	}
	return sharedPool
}

// NewTestEnv wires the full web UI against the test database and a fake
// launcher host. The poller is not started; tests drive it directly.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	pool := getSharedPool(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	fakeHost := NewFakeHost()
	host, err := provider.NewHostClient(fakeHost.URL(), logger)
	if err != nil {
		t.Fatalf("create host client: %v", err)
	}

	snapshots := repository.NewPgSnapshotRepository()
	settingsRepo := repository.NewPgSettingsRepository()
	jwtMgr := auth.NewJWTManager(TestHostSecret, time.Hour)

	cat := catalog.New(logger)
	view := catalog.NewView("")
	outbox := notify.NewOutboxNotifier(pool, repository.NewOutboxRepository(), logger, 64)
	if _, err := cat.Subscribe(outbox); err != nil {
		t.Fatalf("subscribe outbox: %v", err)
	}

	breaker := guard.NewCircuitBreaker(3, time.Minute)
	snapshotPoller := poller.New(poller.Options{
		Source:    host,
		Catalog:   cat,
		View:      view,
		Breaker:   breaker,
		DB:        pool,
		Snapshots: snapshots,
		Logger:    logger,
		Interval:  time.Hour,
	})
	settingsSvc := service.NewSettingsService(host, cat, view, pool, settingsRepo, logger)

	router := app.NewRouter(app.RouterDeps{
		Pool:                 pool,
		JWTMgr:               jwtMgr,
		Logger:               logger,
		Catalog:              cat,
		Refresher:            snapshotPoller,
		Snapshots:            snapshotPoller,
		Settings:             settingsSvc,
		SiteConfig:           service.NewSiteConfigService(host, projection.NewInMemoryStore(), time.Hour, logger),
		HostState:            func() string { return breaker.State(poller.BreakerKey).String() },
		ContentCacheInterval: time.Hour,
	})

	env := &TestEnv{
		Server:    httptest.NewServer(router),
		Pool:      pool,
		JWTMgr:    jwtMgr,
		Host:      fakeHost,
		Catalog:   cat,
		Poller:    snapshotPoller,
		Outbox:    outbox,
		Snapshots: snapshots,
		Settings:  settingsRepo,
		t:         t,
	}

	// Clean before test to ensure isolation
	env.CleanAll()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		outbox.Run(ctx)
	}()

	t.Cleanup(func() {
		env.Server.Close()
		fakeHost.Close()
		cancel()
		<-done
		env.CleanAll()
	})

	return env
}
