package usage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/pkg/entitlement"
	"github.com/dmitrymomot/gatekit/pkg/logger"
	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// DefaultLedgerTimeout bounds every ledger call; a slow ledger must not
// stall request handling.
const DefaultLedgerTimeout = 2 * time.Second

// PlanResolver provides the effective plan the tracker enforces against.
// *entitlement.Resolver satisfies it.
type PlanResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (entitlement.EffectivePlan, error)
}

// Tracker enforces per-period business quotas. It deliberately exposes a
// two-step API: CanPerform (check) and Increment (commit), because the
// gated action between them is an asynchronous, possibly-failing
// operation that must not consume quota on failure. Two concurrent
// requests can both pass the check just under the limit and both commit,
// putting the user slightly over quota; that race is accepted and
// bounded by per-route rate limiting, not fixed here.
type Tracker struct {
	ledger   Ledger
	resolver PlanResolver
	timeout  time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLedgerTimeout overrides the per-call ledger timeout.
func WithLedgerTimeout(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the logger used for ledger-failure denials.
func WithLogger(log *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// NewTracker creates a quota Tracker. Panics on nil dependencies to fail
// fast during initialization.
func NewTracker(ledger Ledger, resolver PlanResolver, opts ...TrackerOption) *Tracker {
	if ledger == nil {
		panic("usage: Ledger is required")
	}
	if resolver == nil {
		panic("usage: PlanResolver is required")
	}

	t := &Tracker{
		ledger:   ledger,
		resolver: resolver,
		timeout:  DefaultLedgerTimeout,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CanPerform checks whether the user may consume the metered feature
// right now. Unlimited plans are allowed without touching the ledger at
// all. A ledger failure denies the action (fail closed): unmetered
// paid-feature consumption must not silently become free, unlike rate
// limiting which fails open.
func (t *Tracker) CanPerform(ctx context.Context, userID uuid.UUID, feature plan.Feature) (CheckResult, error) {
	ep, err := t.resolver.Resolve(ctx, userID)
	if err != nil {
		return CheckResult{Allowed: false}, err
	}

	limit, metered := ep.Plan.LimitFor(feature)
	if !metered {
		return CheckResult{Allowed: false, Plan: ep.Tier, IsTrial: ep.IsTrial}, ErrFeatureNotMetered
	}

	result := CheckResult{
		Limit:   limit,
		Plan:    ep.Tier,
		IsTrial: ep.IsTrial,
	}

	if limit == plan.Unlimited {
		result.Allowed = true
		return result, nil
	}

	lctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	current, err := t.ledger.ReadCount(lctx, userID, feature, CurrentPeriod(t.now()))
	if err != nil {
		t.log.WarnContext(ctx, "usage ledger read failed, denying action",
			logger.UserID(userID),
			logger.Feature(string(feature)),
			logger.Error(err))
		result.Allowed = false
		return result, errors.Join(ErrLedgerUnavailable, err)
	}

	result.CurrentUsage = current
	result.Allowed = current < limit
	return result, nil
}

// Increment commits amount units of consumption to the current period as
// one atomic add. Callers invoke it only after the gated action actually
// succeeded; an aborted request simply never commits.
func (t *Tracker) Increment(ctx context.Context, userID uuid.UUID, feature plan.Feature, amount int64) (IncrementResult, error) {
	if amount <= 0 {
		return IncrementResult{}, ErrInvalidAmount
	}

	ep, err := t.resolver.Resolve(ctx, userID)
	if err != nil {
		return IncrementResult{}, err
	}

	limit, metered := ep.Plan.LimitFor(feature)
	if !metered {
		return IncrementResult{}, ErrFeatureNotMetered
	}

	lctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	newCount, err := t.ledger.AtomicAdd(lctx, userID, feature, CurrentPeriod(t.now()), amount)
	if err != nil {
		return IncrementResult{}, errors.Join(ErrLedgerUnavailable, err)
	}

	res := IncrementResult{NewCount: newCount}
	if limit == plan.Unlimited {
		res.WasWithinLimit = true
		res.IsNowWithinLimit = true
		return res, nil
	}

	res.WasWithinLimit = newCount-amount < limit
	res.IsNowWithinLimit = newCount <= limit
	return res, nil
}

// Snapshot returns current usage against limits for every metered
// feature on the user's plan. Tolerant of ledger errors: a failed read
// reports zero rather than failing the whole dashboard.
func (t *Tracker) Snapshot(ctx context.Context, userID uuid.UUID) (map[plan.Feature]FeatureUsage, error) {
	ep, err := t.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	period := CurrentPeriod(t.now())
	out := make(map[plan.Feature]FeatureUsage, len(ep.Plan.Limits))

	for feature, limit := range ep.Plan.Limits {
		fu := FeatureUsage{Limit: limit}
		if limit != plan.Unlimited {
			lctx, cancel := context.WithTimeout(ctx, t.timeout)
			if current, err := t.ledger.ReadCount(lctx, userID, feature, period); err == nil {
				fu.Current = current
			}
			cancel()
		}
		out[feature] = fu
	}

	return out, nil
}

// Percentage returns usage as a percentage (0-100, or -1 for unlimited).
// Returns 0 on errors; this is a display helper, not an enforcement path.
func (t *Tracker) Percentage(ctx context.Context, userID uuid.UUID, feature plan.Feature) int {
	res, err := t.CanPerform(ctx, userID, feature)
	if err != nil {
		return 0
	}

	if res.Limit == plan.Unlimited {
		return -1
	}
	if res.Limit == 0 {
		return 100
	}
	return min(int((res.CurrentUsage*100)/res.Limit), 100)
}

// CountFor adapts the tracker to the usage-source signature the
// entitlement resolver's downgrade check expects.
func (t *Tracker) CountFor(ctx context.Context, userID uuid.UUID, feature plan.Feature) (int64, error) {
	lctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.ledger.ReadCount(lctx, userID, feature, CurrentPeriod(t.now()))
}
