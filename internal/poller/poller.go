// Package poller keeps the catalog in sync with the launcher host by fetching
// games snapshots on a ticker.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bsglauncher/webui/internal/catalog"
	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/guard"
	"github.com/bsglauncher/webui/internal/repository"
)

// BreakerKey is the circuit breaker key for the launcher host.
const BreakerKey = "host"

const defaultKeepSnapshots = 20

// Source fetches a games snapshot.
type Source interface {
	Games(ctx context.Context) ([]domain.RawGame, error)
}

// Applier applies a snapshot to the catalog.
type Applier interface {
	ApplySnapshot(games []domain.RawGame, force bool, view *catalog.View) int
}

// SnapshotPoller polls the host and applies snapshots to the catalog. The
// first successful poll and triggered polls are forced.
type SnapshotPoller struct {
	source    Source
	catalog   Applier
	view      *catalog.View
	breaker   *guard.CircuitBreaker
	db        repository.DBTX
	snapshots repository.SnapshotRepository
	logger    *slog.Logger
	interval  time.Duration
	keep      int
	now       func() time.Time

	trigger chan struct{}

	mu     sync.Mutex
	primed bool
}

// Options configures a SnapshotPoller. DB and Snapshots are optional.
type Options struct {
	Source    Source
	Catalog   Applier
	View      *catalog.View
	Breaker   *guard.CircuitBreaker
	DB        repository.DBTX
	Snapshots repository.SnapshotRepository
	Logger    *slog.Logger
	Interval  time.Duration
}

// New creates a snapshot poller.
func New(opts Options) *SnapshotPoller {
	interval := opts.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	breaker := opts.Breaker
	if breaker == nil {
		breaker = guard.NewCircuitBreaker(3, 30*time.Second)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	view := opts.View
	if view == nil {
		view = catalog.NewView("")
	}
	return &SnapshotPoller{
		source:    opts.Source,
		catalog:   opts.Catalog,
		view:      view,
		breaker:   breaker,
		db:        opts.DB,
		snapshots: opts.Snapshots,
		logger:    logger,
		interval:  interval,
		keep:      defaultKeepSnapshots,
		now:       time.Now,
		trigger:   make(chan struct{}, 1),
	}
}

// Start replays the last stored snapshot, then polls in a goroutine until
// ctx is cancelled.
func (p *SnapshotPoller) Start(ctx context.Context) {
	p.logger.Info("snapshot poller started", "interval", p.interval)
	p.replay(ctx)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.pollLogged(ctx, false)
		for {
			select {
			case <-ctx.Done():
				p.logger.Info("snapshot poller stopped")
				return
			case <-ticker.C:
				p.pollLogged(ctx, false)
			case <-p.trigger:
				p.pollLogged(ctx, true)
			}
		}
	}()
}

// Trigger requests an immediate forced poll. Calls made while one is pending
// are coalesced.
func (p *SnapshotPoller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

func (p *SnapshotPoller) pollLogged(ctx context.Context, force bool) {
	if _, err := p.Poll(ctx, force); err != nil && ctx.Err() == nil {
		p.logger.Warn("snapshot poll failed", "error", err, "breaker", p.breaker.State(BreakerKey).String())
	}
}

// Poll fetches one snapshot and applies it. It returns the number of games
// handled as changes.
func (p *SnapshotPoller) Poll(ctx context.Context, force bool) (int, error) {
	if res := p.breaker.Check(ctx, BreakerKey); !res.Allowed {
		return 0, domain.ErrHostUnavailable(res.Reason, nil)
	}

	games, err := p.source.Games(ctx)
	if err != nil {
		p.breaker.RecordFailure(BreakerKey)
		return 0, err
	}
	p.breaker.RecordSuccess(BreakerKey)

	p.mu.Lock()
	if !p.primed {
		force = true
		p.primed = true
	}
	p.mu.Unlock()

	return p.Apply(ctx, repository.SourcePoll, games, force), nil
}

// Apply applies games to the catalog and stores the snapshot. Storage
// failures are logged, not returned.
func (p *SnapshotPoller) Apply(ctx context.Context, source string, games []domain.RawGame, force bool) int {
	changed := p.catalog.ApplySnapshot(games, force, p.view)
	if changed > 0 {
		p.logger.Info("snapshot applied", "source", source, "games", len(games), "changed", changed, "force", force)
	}
	p.persist(ctx, source, games)
	return changed
}

func (p *SnapshotPoller) persist(ctx context.Context, source string, games []domain.RawGame) {
	if p.snapshots == nil || p.db == nil {
		return
	}
	if err := p.snapshots.Save(ctx, p.db, source, games, p.now()); err != nil {
		p.logger.Error("store snapshot", "source", source, "error", err)
		return
	}
	if _, err := p.snapshots.Prune(ctx, p.db, p.keep); err != nil {
		p.logger.Error("prune snapshots", "error", err)
	}
}

func (p *SnapshotPoller) replay(ctx context.Context) {
	if p.snapshots == nil || p.db == nil {
		return
	}
	snap, err := p.snapshots.Latest(ctx, p.db)
	if err != nil {
		p.logger.Error("load last snapshot", "error", err)
		return
	}
	if snap == nil {
		return
	}
	changed := p.catalog.ApplySnapshot(snap.Games, true, p.view)
	p.logger.Info("replayed stored snapshot",
		"snapshot_id", snap.ID,
		"received_at", snap.ReceivedAt,
		"games", len(snap.Games),
		"changed", changed,
	)
}
