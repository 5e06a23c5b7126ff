// Command event-tail prints catalog events from Kafka as JSON lines.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/infra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("event tail failed", "error", err)
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

	topics := []string{
		cfg.Topic(string(domain.EventGameUpdated)),
		cfg.Topic(string(domain.EventGameSelected)),
		cfg.Topic(string(domain.EventLanguageRedrawn)),
	}
	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, topics, cfg.KafkaGroupID, cfg.KafkaEnabled, logger)
	defer consumer.Close()

	out := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, infra.ErrKafkaDisabled) {
				return fmt.Errorf("set KAFKA_ENABLED=true to tail events: %w", err)
			}
			if ctx.Err() != nil {
				logger.Info("event tail stopped")
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		out.Info("event",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
			"value", string(msg.Value),
		)
	}
}
