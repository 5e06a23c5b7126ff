package guard

import (
	"context"
	"sync"
	"time"
)

// IdempotencyGuard deduplicates requests by idempotency key. Keys are
// forgotten after ttl.
type IdempotencyGuard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  clock
}

// NewIdempotencyGuard creates a new in-memory idempotency guard.
func NewIdempotencyGuard(ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Check returns whether the given key has already been processed. An empty
// key is always allowed.
func (ig *IdempotencyGuard) Check(_ context.Context, key string) Result {
	if key == "" {
		return Result{Allowed: true}
	}

	ig.mu.Lock()
	defer ig.mu.Unlock()

	now := ig.now()
	ig.evict(now)

	if _, ok := ig.seen[key]; ok {
		return Result{
			Allowed: false,
			Reason:  "duplicate request: idempotency key already processed",
			Guard:   "idempotency",
		}
	}

	ig.seen[key] = now
	return Result{Allowed: true}
}

// Remove deletes a key from the seen set so a failed request can be retried.
func (ig *IdempotencyGuard) Remove(key string) {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	delete(ig.seen, key)
}

func (ig *IdempotencyGuard) evict(now time.Time) {
	if ig.ttl <= 0 {
		return
	}
	for k, at := range ig.seen {
		if now.Sub(at) > ig.ttl {
			delete(ig.seen, k)
		}
	}
}
