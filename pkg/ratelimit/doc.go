// Package ratelimit provides short-window request-rate ceilings keyed by
// opaque identifiers (user ID, session ID, or client IP), orthogonal to
// business quotas: it protects against abuse and cost spikes regardless
// of plan.
//
// The limiter is a fixed-window counter over a TTL-capable counter store
// (Redis for multi-instance deployments, memory for tests), so
// enforcement is approximate but shared across instances. Requests
// straddling a window boundary may count in either window; that is
// accepted by design.
//
// Failure handling is asymmetric with the usage tracker on purpose: a
// counter-store outage allows the request (fail open). Losing abuse
// protection briefly is preferable to turning a Redis outage into a
// product outage.
//
// Basic usage:
//
//	limiter, err := ratelimit.NewFixedWindow(ratelimit.NewRedisStore(client))
//	if err != nil {
//	    // invalid configuration
//	}
//
//	result, err := limiter.Check(ctx, userID.String(), ratelimit.Spec{
//	    Limit:  5,
//	    Window: time.Minute,
//	})
//	if err == nil && !result.Allowed {
//	    // deny with result.RetryAfter()
//	}
package ratelimit
