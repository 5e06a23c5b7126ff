package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
)

const outboxColumns = `"id", "eventId", "aggregateType", "aggregateId", "eventType",
	"partitionKey", "headers", "payload", "occurredAt"`

// PgOutboxRepository implements OutboxRepository using pgx. Published rows are
// stamped rather than deleted so the event history survives a relay restart;
// PurgePublished trims it.
type PgOutboxRepository struct{}

// NewOutboxRepository creates a new PgOutboxRepository.
func NewOutboxRepository() *PgOutboxRepository {
	return &PgOutboxRepository{}
}

func (r *PgOutboxRepository) Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error {
	_, err := db.Exec(ctx,
		`INSERT INTO event_outbox
		   ("eventId", "aggregateType", "aggregateId", "eventType", "partitionKey", "headers", "payload", "occurredAt")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		draft.EventID, string(draft.AggregateType), draft.AggregateID, string(draft.EventType),
		draft.PartitionKey, draft.Headers, draft.Payload, draft.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert %s event for %s: %w", draft.EventType, draft.AggregateID, err)
	}
	return nil
}

func (r *PgOutboxRepository) FetchUnpublishedRows(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error) {
	rows, err := db.Query(ctx,
		`SELECT `+outboxColumns+`
		 FROM event_outbox
		 WHERE "publishedAt" IS NULL
		 ORDER BY "id"
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch unpublished events: %w", err)
	}
	defer rows.Close()

	out := make([]OutboxRow, 0, limit)
	for rows.Next() {
		var row OutboxRow
		if err := rows.Scan(&row.SeqID, &row.EventID, &row.AggregateType, &row.AggregateID,
			&row.EventType, &row.PartitionKey, &row.Headers, &row.Payload, &row.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return out, nil
}

func (r *PgOutboxRepository) MarkPublished(ctx context.Context, db DBTX, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := db.Exec(ctx,
		`UPDATE event_outbox SET "publishedAt" = now()
		 WHERE "id" = ANY($1) AND "publishedAt" IS NULL`, ids); err != nil {
		return fmt.Errorf("mark %d events published: %w", len(ids), err)
	}
	return nil
}

func (r *PgOutboxRepository) PurgePublished(ctx context.Context, db DBTX, before time.Time) (int64, error) {
	tag, err := db.Exec(ctx,
		`DELETE FROM event_outbox WHERE "publishedAt" IS NOT NULL AND "publishedAt" < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("purge published events: %w", err)
	}
	return tag.RowsAffected(), nil
}
