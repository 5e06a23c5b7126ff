// Package guard holds in-process request guards: a circuit breaker for the
// launcher host, a sliding window rate limiter and an idempotency filter.
package guard

import "time"

// Result is the outcome of a guard check.
type Result struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Guard   string `json:"guard,omitempty"` // which guard blocked
}

type clock func() time.Time
