package ratelimit

import (
	"context"
	"time"
)

// Spec declares a rate limit: at most Limit requests per Window. Each
// route class carries its own Spec, tuned independently of business
// quotas (general traffic, AI-cost-bearing traffic, and billing traffic
// get different ceilings).
type Spec struct {
	Limit  int           // maximum requests per window
	Window time.Duration // window length
}

// Result contains the result of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is the time when the rate limit window resets.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter is the interface route code depends on.
type Limiter interface {
	// Check consumes one slot for the identifier and reports whether the
	// request fits under the spec's window ceiling.
	Check(ctx context.Context, identifier string, spec Spec) (*Result, error)
}

// Store defines the interface for rate limit counter backends. The
// backend owns the window state: counters carry a TTL equal to the
// window length and expire on their own.
type Store interface {
	// IncrementAndGet atomically increments the counter for the given key
	// and returns the new value along with the remaining TTL. The TTL is
	// set to the window length when the key is first created.
	IncrementAndGet(ctx context.Context, key string, incr int, window time.Duration) (current int64, ttl time.Duration, err error)

	// Delete removes the given key from the store.
	Delete(ctx context.Context, key string) error
}
