package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsglauncher/webui/internal/repository"
	"github.com/segmentio/kafka-go"
)

// MessagePublisher writes one message to a topic. KafkaProducer implements it.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte, headers ...kafka.Header) error
}

// OutboxPublisher relays unpublished event_outbox rows to Kafka.
type OutboxPublisher struct {
	db        repository.DBTX
	repo      repository.OutboxRepository
	producer  MessagePublisher
	topic     func(eventType string) string
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
	retention time.Duration
	now       func() time.Time
}

// purgeInterval is how often published rows older than the retention are
// deleted.
const purgeInterval = time.Hour

// NewOutboxPublisher creates an outbox publisher. topic maps an event type to
// its Kafka topic.
func NewOutboxPublisher(db repository.DBTX, repo repository.OutboxRepository, producer MessagePublisher, topic func(string) string, logger *slog.Logger) *OutboxPublisher {
	return &OutboxPublisher{
		db:        db,
		repo:      repo,
		producer:  producer,
		topic:     topic,
		logger:    logger,
		interval:  500 * time.Millisecond,
		batchSize: 100,
		now:       time.Now,
	}
}

// WithBatch overrides the poll interval and batch size; non-positive values
// keep the defaults.
func (p *OutboxPublisher) WithBatch(interval time.Duration, size int) *OutboxPublisher {
	if interval > 0 {
		p.interval = interval
	}
	if size > 0 {
		p.batchSize = size
	}
	return p
}

// WithRetention keeps published rows for d before purging them. Zero keeps
// them forever.
func (p *OutboxPublisher) WithRetention(d time.Duration) *OutboxPublisher {
	p.retention = d
	return p
}

// Start begins polling in a goroutine. Stops when ctx is cancelled.
func (p *OutboxPublisher) Start(ctx context.Context) {
	p.logger.Info("outbox publisher started",
		"interval", p.interval,
		"batch_size", p.batchSize,
		"retention", p.retention,
	)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		purge := time.NewTicker(purgeInterval)
		defer purge.Stop()

		for {
			select {
			case <-ctx.Done():
				p.logger.Info("outbox publisher stopped")
				return
			case <-ticker.C:
				if _, err := p.PublishBatch(ctx); err != nil && ctx.Err() == nil {
					p.logger.Error("outbox publish error", "error", err)
				}
			case <-purge.C:
				if _, err := p.Purge(ctx); err != nil && ctx.Err() == nil {
					p.logger.Error("outbox purge error", "error", err)
				}
			}
		}
	}()
}

// outboxEnvelope is the Kafka message body.
type outboxEnvelope struct {
	EventID       string          `json:"event_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// PublishBatch publishes one batch in sequence order and marks the published
// rows. It stops at the first publish failure so later events for the same
// game are not sent ahead of it.
func (p *OutboxPublisher) PublishBatch(ctx context.Context) (int, error) {
	rows, err := p.repo.FetchUnpublishedRows(ctx, p.db, p.batchSize)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	published := make([]int64, 0, len(rows))
	var publishErr error
	for _, row := range rows {
		msg, err := json.Marshal(outboxEnvelope{
			EventID:       row.EventID.String(),
			AggregateType: string(row.AggregateType),
			AggregateID:   row.AggregateID,
			EventType:     string(row.EventType),
			Payload:       row.Payload,
			OccurredAt:    row.OccurredAt,
		})
		if err != nil {
			publishErr = fmt.Errorf("encode event %s: %w", row.EventID, err)
			break
		}

		err = p.producer.Publish(ctx, p.topic(string(row.EventType)), []byte(row.PartitionKey), msg,
			kafka.Header{Key: "eventId", Value: []byte(row.EventID.String())},
			kafka.Header{Key: "eventType", Value: []byte(row.EventType)},
		)
		if err != nil {
			publishErr = fmt.Errorf("publish event %s: %w", row.EventID, err)
			break
		}
		published = append(published, row.SeqID)
	}

	if err := p.repo.MarkPublished(ctx, p.db, published); err != nil {
		return 0, err
	}

	p.logger.Debug("outbox batch complete", "published", len(published), "fetched", len(rows))
	return len(published), publishErr
}

// Purge deletes rows published longer ago than the retention.
func (p *OutboxPublisher) Purge(ctx context.Context) (int64, error) {
	if p.retention <= 0 {
		return 0, nil
	}
	n, err := p.repo.PurgePublished(ctx, p.db, p.now().Add(-p.retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		p.logger.Info("purged published outbox rows", "count", n, "retention", p.retention)
	}
	return n, nil
}
