package gatekit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/pkg/logger"
	"github.com/dmitrymomot/gatekit/pkg/plan"
	"github.com/dmitrymomot/gatekit/pkg/ratelimit"
	"github.com/dmitrymomot/gatekit/pkg/usage"
)

// RouteClass groups routes by cost profile for rate limiting. Each class
// gets its own independently tunable window spec: AI-cost-bearing
// traffic is throttled far harder than general page traffic.
type RouteClass string

const (
	ClassGeneral RouteClass = "general"
	ClassAI      RouteClass = "ai"
	ClassBilling RouteClass = "billing"
)

// DefaultSpecs holds the out-of-the-box per-class rate limits.
var DefaultSpecs = map[RouteClass]ratelimit.Spec{
	ClassGeneral: {Limit: 100, Window: time.Minute},
	ClassAI:      {Limit: 10, Window: time.Minute},
	ClassBilling: {Limit: 20, Window: time.Minute},
}

// Gate is the single entry point routes call for access-control
// decisions. It composes, in order: rate limiter (cheapest, rejects
// abusive traffic before any database read), principal presence,
// effective-plan capability flag, and usage quota, short-circuiting on
// the first denial.
//
// The Gate never increments usage itself. Callers commit consumption
// with CommitUsage only after the gated action actually succeeded, so
// failed or aborted work never burns quota.
type Gate struct {
	limiter  ratelimit.Limiter
	resolver usage.PlanResolver
	tracker  *usage.Tracker
	specs    map[RouteClass]ratelimit.Spec
	log      *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithRateLimit overrides the spec for one route class.
func WithRateLimit(class RouteClass, spec ratelimit.Spec) GateOption {
	return func(g *Gate) {
		g.specs[class] = spec
	}
}

// WithLogger sets the gate's logger.
func WithLogger(log *slog.Logger) GateOption {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a Gate. Panics on nil dependencies to fail fast during
// initialization; a misconfigured gate should prevent startup rather
// than misbehave at request time.
func New(limiter ratelimit.Limiter, resolver usage.PlanResolver, tracker *usage.Tracker, opts ...GateOption) *Gate {
	if limiter == nil {
		panic("gatekit: ratelimit.Limiter is required")
	}
	if resolver == nil {
		panic("gatekit: plan resolver is required")
	}
	if tracker == nil {
		panic("gatekit: usage.Tracker is required")
	}

	g := &Gate{
		limiter:  limiter,
		resolver: resolver,
		tracker:  tracker,
		specs:    make(map[RouteClass]ratelimit.Spec, len(DefaultSpecs)),
		log:      slog.Default(),
	}
	for class, spec := range DefaultSpecs {
		g.specs[class] = spec
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize decides whether the principal may perform the feature right
// now. It never commits usage; see CommitUsage.
func (g *Gate) Authorize(ctx context.Context, p *Principal, class RouteClass, feature plan.Feature) Decision {
	// Rate limit first, keyed by the best identifier available, so
	// abusive traffic is rejected before any store is touched. Anonymous
	// requests are limited by IP.
	if identifier := p.identifier(); identifier != "" {
		spec, ok := g.specs[class]
		if !ok {
			spec = g.specs[ClassGeneral]
		}

		result, err := g.limiter.Check(ctx, string(class)+":"+identifier, spec)
		if err == nil && !result.Allowed {
			return Decision{
				Code:      CodeRateLimited,
				Remaining: result.Remaining,
				ResetAt:   result.ResetAt,
			}
		}
		if err != nil {
			// Invalid arguments only; the limiter itself fails open.
			g.log.ErrorContext(ctx, "rate limit check failed",
				logger.RouteClass(string(class)),
				logger.Error(err))
		}
	}

	if p == nil || p.UserID == uuid.Nil {
		return Decision{Code: CodeUnauthorized}
	}

	ep, err := g.resolver.Resolve(ctx, p.UserID)
	if err != nil {
		// Without a plan fact there is no safe way to grant access.
		g.log.ErrorContext(ctx, "effective plan resolution failed",
			logger.UserID(p.UserID),
			logger.Error(err))
		return Decision{Code: CodeForbidden}
	}

	if !ep.Plan.Can(feature) {
		return Decision{
			Code:    CodeForbidden,
			Plan:    ep.Tier,
			IsTrial: ep.IsTrial,
		}
	}

	limit, metered := ep.Plan.LimitFor(feature)
	if !metered {
		// Pure capability flag, nothing to meter.
		return allow(ep.Tier, ep.IsTrial)
	}

	check, err := g.tracker.CanPerform(ctx, p.UserID, feature)
	if err != nil {
		if errors.Is(err, usage.ErrLedgerUnavailable) {
			g.log.WarnContext(ctx, "usage ledger unavailable, denying",
				logger.UserID(p.UserID),
				logger.Feature(string(feature)))
		}
		// Quota enforcement fails closed, unlike the rate limiter.
		return Decision{
			Code:    CodeLimitExceeded,
			Plan:    ep.Tier,
			IsTrial: ep.IsTrial,
			Limit:   limit,
		}
	}

	d := Decision{
		Allowed:      check.Allowed,
		Code:         CodeOK,
		Plan:         check.Plan,
		IsTrial:      check.IsTrial,
		CurrentUsage: check.CurrentUsage,
		Limit:        check.Limit,
	}
	if !check.Allowed {
		d.Code = CodeLimitExceeded
	}
	return d
}

// CommitUsage charges the feature's quota after the gated action
// succeeded. Returns the increment outcome so callers can surface a
// "you just used your last export" prompt.
func (g *Gate) CommitUsage(ctx context.Context, p *Principal, feature plan.Feature, amount int64) (usage.IncrementResult, error) {
	if p == nil || p.UserID == uuid.Nil {
		return usage.IncrementResult{}, ErrNoPrincipal
	}
	return g.tracker.Increment(ctx, p.UserID, feature, amount)
}
