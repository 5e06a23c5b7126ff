package notify

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/repository"
)

const (
	defaultOutboxBuffer = 256
	flushTimeout        = 5 * time.Second
)

// OutboxNotifier records game changes as outbox events. Hooks only enqueue;
// Run writes the queue to the outbox table.
type OutboxNotifier struct {
	db      repository.DBTX
	repo    repository.OutboxRepository
	logger  *slog.Logger
	queue   chan domain.OutboxDraft
	now     func() time.Time
	dropped atomic.Int64
	written atomic.Int64
}

// NewOutboxNotifier creates an outbox notifier with the given queue size.
func NewOutboxNotifier(db repository.DBTX, repo repository.OutboxRepository, logger *slog.Logger, buffer int) *OutboxNotifier {
	if buffer <= 0 {
		buffer = defaultOutboxBuffer
	}
	return &OutboxNotifier{
		db:     db,
		repo:   repo,
		logger: logger,
		queue:  make(chan domain.OutboxDraft, buffer),
		now:    time.Now,
	}
}

func (n *OutboxNotifier) OnGameUpdated(old, updated domain.Game) {
	n.record(domain.NewGameUpdatedEvent(old, updated, n.now()))
}

func (n *OutboxNotifier) OnSelectedGameUpdated(old, updated domain.Game, forceRedraw bool) {
	n.record(domain.NewGameSelectedEvent(old, updated, forceRedraw, n.now()))
}

func (n *OutboxNotifier) RedrawLanguage(language string) {
	n.record(domain.NewLanguageRedrawnEvent(language, n.now()))
}

func (n *OutboxNotifier) record(draft domain.OutboxDraft, err error) {
	if err != nil {
		n.logger.Error("build outbox event", "error", err)
		return
	}
	select {
	case n.queue <- draft:
	default:
		n.dropped.Add(1)
		n.logger.Warn("outbox queue full, event dropped",
			"event_type", draft.EventType,
			"aggregate_id", draft.AggregateID,
		)
	}
}

// Run writes queued events until ctx is cancelled, then flushes what is left.
func (n *OutboxNotifier) Run(ctx context.Context) {
	n.logger.Info("outbox notifier started", "buffer", cap(n.queue))
	for {
		select {
		case <-ctx.Done():
			n.flush()
			n.logger.Info("outbox notifier stopped", "written", n.written.Load(), "dropped", n.dropped.Load())
			return
		case draft := <-n.queue:
			n.write(ctx, draft)
		}
	}
}

func (n *OutboxNotifier) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	for {
		select {
		case draft := <-n.queue:
			n.write(ctx, draft)
		default:
			return
		}
	}
}

func (n *OutboxNotifier) write(ctx context.Context, draft domain.OutboxDraft) {
	if err := n.repo.Insert(ctx, n.db, draft); err != nil {
		n.logger.Error("write outbox event", "event_id", draft.EventID, "event_type", draft.EventType, "error", err)
		return
	}
	n.written.Add(1)
}

// Dropped returns how many events were discarded because the queue was full.
func (n *OutboxNotifier) Dropped() int64 { return n.dropped.Load() }

// Written returns how many events were stored.
func (n *OutboxNotifier) Written() int64 { return n.written.Load() }
