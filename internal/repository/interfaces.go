package repository

import (
	"context"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// OutboxRow is a stored outbox event with its sequence number.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublishedRows returns unpublished events in insertion order.
	FetchUnpublishedRows(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps publishedAt on the given rows.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error

	// PurgePublished deletes rows published before the cutoff.
	PurgePublished(ctx context.Context, db DBTX, before time.Time) (int64, error)
}

// Snapshot is a stored host games snapshot.
type Snapshot struct {
	ID         int64
	Source     string
	Games      []domain.RawGame
	ReceivedAt time.Time
}

// Snapshot sources.
const (
	SourcePoll = "poll"
	SourcePush = "push"
)

// SnapshotRepository provides access to catalog_snapshots.
type SnapshotRepository interface {
	// Save stores a snapshot as received from the host.
	Save(ctx context.Context, db DBTX, source string, games []domain.RawGame, at time.Time) error

	// Latest returns the most recent snapshot, or nil if none is stored.
	Latest(ctx context.Context, db DBTX) (*Snapshot, error)

	// Prune deletes all but the newest keep snapshots.
	Prune(ctx context.Context, db DBTX, keep int) (int64, error)
}

// SettingsRepository provides access to launcher_settings.
type SettingsRepository interface {
	// Load returns the stored settings, or nil if none are stored.
	Load(ctx context.Context, db DBTX) (*domain.Settings, error)

	// Save upserts the settings document.
	Save(ctx context.Context, db DBTX, settings domain.Settings) error
}
