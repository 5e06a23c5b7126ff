package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/jackc/pgx/v5"
)

// PgSnapshotRepository implements SnapshotRepository using pgx.
type PgSnapshotRepository struct{}

// NewPgSnapshotRepository creates a new PgSnapshotRepository.
func NewPgSnapshotRepository() *PgSnapshotRepository {
	return &PgSnapshotRepository{}
}

// Save stores the snapshot as a JSONB document.
func (r *PgSnapshotRepository) Save(ctx context.Context, db DBTX, source string, games []domain.RawGame, at time.Time) error {
	doc, err := domain.EncodeGames(games)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx,
		`INSERT INTO catalog_snapshots ("source", "games", "gameCount", "receivedAt")
		 VALUES ($1, $2, $3, $4)`,
		source, doc, len(games), at.UTC())
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Latest returns the newest snapshot, or nil if the table is empty.
func (r *PgSnapshotRepository) Latest(ctx context.Context, db DBTX) (*Snapshot, error) {
	row := db.QueryRow(ctx,
		`SELECT "id", "source", "games", "receivedAt"
		 FROM catalog_snapshots
		 ORDER BY "receivedAt" DESC, "id" DESC
		 LIMIT 1`)

	var (
		s   Snapshot
		doc []byte
	)
	err := row.Scan(&s.ID, &s.Source, &doc, &s.ReceivedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}

	s.Games, err = domain.DecodeGames(doc)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", s.ID, err)
	}
	return &s, nil
}

// Prune keeps the newest keep snapshots.
func (r *PgSnapshotRepository) Prune(ctx context.Context, db DBTX, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	tag, err := db.Exec(ctx,
		`DELETE FROM catalog_snapshots
		 WHERE "id" NOT IN (
		   SELECT "id" FROM catalog_snapshots ORDER BY "receivedAt" DESC, "id" DESC LIMIT $1
		 )`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}
