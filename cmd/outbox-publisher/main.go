package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bsglauncher/webui/internal/infra"
	"github.com/bsglauncher/webui/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("outbox publisher failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("outbox publisher connected to postgres")

	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	defer producer.Close()
	if !producer.Enabled() {
		logger.Warn("kafka disabled; outbox rows will be marked published without being sent")
	}

	publisher := infra.NewOutboxPublisher(pool, repository.NewOutboxRepository(), producer, cfg.Topic, logger).
		WithBatch(cfg.OutboxPollInterval, cfg.OutboxBatchSize).
		WithRetention(cfg.OutboxRetention)
	publisher.Start(ctx)

	<-ctx.Done()
	logger.Info("outbox publisher shutting down")
	return nil
}
