package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bsglauncher/webui/internal/app"
	"github.com/bsglauncher/webui/internal/auth"
	"github.com/bsglauncher/webui/internal/catalog"
	"github.com/bsglauncher/webui/internal/guard"
	"github.com/bsglauncher/webui/internal/handler"
	"github.com/bsglauncher/webui/internal/infra"
	"github.com/bsglauncher/webui/internal/notify"
	"github.com/bsglauncher/webui/internal/poller"
	"github.com/bsglauncher/webui/internal/projection"
	"github.com/bsglauncher/webui/internal/provider"
	"github.com/bsglauncher/webui/internal/repository"
	"github.com/bsglauncher/webui/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Optional Postgres
	var (
		pool      *pgxpool.Pool
		db        repository.DBTX
		snapshots repository.SnapshotRepository
		settings  repository.SettingsRepository
	)
	if cfg.DatabaseEnabled {
		pool, err = infra.NewPostgresPool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		logger.Info("connected to postgres")

		if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		db = pool
		snapshots = repository.NewPgSnapshotRepository()
		settings = repository.NewPgSettingsRepository()
	}

	// Launcher host
	host, err := provider.NewHostClient(cfg.HostBaseURL, logger)
	if err != nil {
		return fmt.Errorf("create host client: %w", err)
	}
	breaker := guard.NewCircuitBreaker(cfg.HostFailureThreshold, cfg.HostResetTimeout)

	// Catalog and listeners
	cat := catalog.New(logger)
	view := catalog.NewView("")
	hub := infra.NewWSHub(logger, handler.ParseOrigins(cfg.CORSAllowedOrigins))

	if _, err := cat.Subscribe(notify.NewHubNotifier(hub, logger)); err != nil {
		return fmt.Errorf("subscribe hub notifier: %w", err)
	}

	var workers sync.WaitGroup
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if pool != nil {
		outbox := notify.NewOutboxNotifier(pool, repository.NewOutboxRepository(), logger, cfg.OutboxQueueSize)
		if _, err := cat.Subscribe(outbox); err != nil {
			return fmt.Errorf("subscribe outbox notifier: %w", err)
		}
		workers.Add(1)
		go func() {
			defer workers.Done()
			outbox.Run(workerCtx)
		}()
	}

	// Services
	settingsSvc := service.NewSettingsService(host, cat, view, db, settings, logger)
	if _, err := settingsSvc.Load(ctx); err != nil {
		logger.Warn("starting with default settings", "error", err)
	}
	siteConfigSvc := service.NewSiteConfigService(host, projection.NewInMemoryStore(), cfg.ContentCacheInterval, logger)

	snapshotPoller := poller.New(poller.Options{
		Source:    host,
		Catalog:   cat,
		View:      view,
		Breaker:   breaker,
		DB:        db,
		Snapshots: snapshots,
		Logger:    logger,
		Interval:  cfg.PollInterval,
	})

	jwtMgr := auth.NewJWTManager(cfg.HostTokenSecret, cfg.HostTokenExpiry)

	router := app.NewRouter(app.RouterDeps{
		Pool:                 pool,
		JWTMgr:               jwtMgr,
		Logger:               logger,
		Catalog:              cat,
		Refresher:            snapshotPoller,
		Snapshots:            snapshotPoller,
		Settings:             settingsSvc,
		SiteConfig:           siteConfigSvc,
		WebSocket:            hub.ServeWS,
		WSClients:            hub.ConnectionCount,
		HostState:            func() string { return breaker.State(poller.BreakerKey).String() },
		ContentCacheInterval: cfg.ContentCacheInterval,
		CORSAllowedOrigins:   handler.ParseOrigins(cfg.CORSAllowedOrigins),
	})

	snapshotPoller.Start(ctx)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("webui server starting", "addr", addr, "host", cfg.HostBaseURL, "database", cfg.DatabaseEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	stopWorkers()
	workers.Wait()

	logger.Info("server stopped gracefully")
	return nil
}
