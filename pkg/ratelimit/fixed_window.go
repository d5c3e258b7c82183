package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// DefaultStoreTimeout bounds every counter-store call; a slow store must
// not stall request handling.
const DefaultStoreTimeout = 500 * time.Millisecond

// FixedWindow implements a fixed-window counter limiter against a
// shared, TTL-capable counter store, so limits hold across all
// application instances. Requests at a window boundary can be counted in
// either window; that approximation is accepted, no cross-window
// coordination happens.
//
// The limiter fails open: if the store is unreachable or times out, the
// request is allowed. Rate limiting here is an abuse and cost guard, not
// a correctness guarantee, and a counter-store outage must never become
// a full product outage.
type FixedWindow struct {
	store   Store
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a FixedWindow.
type Option func(*FixedWindow)

// WithStoreTimeout overrides the per-call store timeout.
func WithStoreTimeout(d time.Duration) Option {
	return func(fw *FixedWindow) {
		if d > 0 {
			fw.timeout = d
		}
	}
}

// WithLogger sets the logger used when the limiter fails open.
func WithLogger(log *slog.Logger) Option {
	return func(fw *FixedWindow) {
		if log != nil {
			fw.log = log
		}
	}
}

// NewFixedWindow creates a fixed-window limiter backed by the given store.
func NewFixedWindow(store Store, opts ...Option) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	fw := &FixedWindow{
		store:   store,
		timeout: DefaultStoreTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// Check consumes one slot for the identifier under the given spec.
// It never returns a denial as an error: denials come back as a Result
// with Allowed=false, and store failures come back as an allow.
func (fw *FixedWindow) Check(ctx context.Context, identifier string, spec Spec) (*Result, error) {
	if identifier == "" {
		return nil, ErrKeyRequired
	}
	if spec.Limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if spec.Window <= 0 {
		return nil, ErrInvalidWindow
	}

	sctx, cancel := context.WithTimeout(ctx, fw.timeout)
	defer cancel()

	now := time.Now()
	current, ttl, err := fw.store.IncrementAndGet(sctx, identifier, 1, spec.Window)
	if err != nil {
		fw.log.WarnContext(ctx, "rate limit store unavailable, failing open",
			slog.String("identifier", identifier),
			slog.Any("error", err))
		return &Result{
			Allowed:   true,
			Limit:     spec.Limit,
			Remaining: spec.Limit,
			ResetAt:   now.Add(spec.Window),
		}, nil
	}

	return &Result{
		Allowed:   current <= int64(spec.Limit),
		Limit:     spec.Limit,
		Remaining: max(0, spec.Limit-int(current)),
		ResetAt:   now.Add(ttl),
	}, nil
}

// Reset clears the window for the given identifier.
func (fw *FixedWindow) Reset(ctx context.Context, identifier string) error {
	if identifier == "" {
		return ErrKeyRequired
	}
	return fw.store.Delete(ctx, identifier)
}
