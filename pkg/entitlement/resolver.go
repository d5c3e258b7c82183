package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/pkg/plan"
	"github.com/dmitrymomot/gatekit/pkg/trial"
)

// DefaultTrialTier is the tier granted during an active trial.
const DefaultTrialTier = plan.TierPremium

// EffectivePlan is the plan tier actually in force for a user right now,
// derived fresh on every request from subscription, trial, and catalogue
// facts. Never cache it across requests: trial expiry is a pure function
// of wall-clock time and a cached value would go stale.
type EffectivePlan struct {
	Tier    plan.Tier
	IsTrial bool
	Plan    plan.Plan
}

// TrialStatusSource provides the trial classification the resolver needs.
// *trial.Service satisfies it.
type TrialStatusSource interface {
	Status(ctx context.Context, userID uuid.UUID) (trial.Status, error)
}

// Resolver combines subscription record, trial state, and the plan
// catalogue into one EffectivePlan. Tier precedence is total, not
// additive: an active paid subscription always wins over trial state,
// and limits are never merged across tiers.
type Resolver struct {
	catalog   *plan.Catalog
	subs      SubscriptionStore
	trials    TrialStatusSource
	trialTier plan.Tier
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTrialTier overrides the tier granted during an active trial.
func WithTrialTier(tier plan.Tier) ResolverOption {
	return func(r *Resolver) {
		if tier != "" {
			r.trialTier = tier
		}
	}
}

// NewResolver creates a Resolver. Panics on nil dependencies to fail
// fast during initialization.
func NewResolver(catalog *plan.Catalog, subs SubscriptionStore, trials TrialStatusSource, opts ...ResolverOption) *Resolver {
	if catalog == nil {
		panic("entitlement: plan.Catalog is required")
	}
	if subs == nil {
		panic("entitlement: SubscriptionStore is required")
	}
	if trials == nil {
		panic("entitlement: TrialStatusSource is required")
	}

	r := &Resolver{
		catalog:   catalog,
		subs:      subs,
		trials:    trials,
		trialTier: DefaultTrialTier,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes the effective plan for a user:
//
//  1. active subscription -> its tier (unknown tier strings degrade to free)
//  2. else active trial -> the trial tier
//  3. else -> free
//
// Trial fields are never consulted once a subscription is active, and
// never cleared either: the used-trial ratchet must survive a later
// cancellation.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (EffectivePlan, error) {
	sub, err := r.subs.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrSubscriptionNotFound) {
		return EffectivePlan{}, errors.Join(ErrFailedToResolve, err)
	}

	if sub != nil && sub.IsActive() {
		tier := sub.PlanID
		if !r.catalog.Has(tier) {
			tier = plan.TierFree
		}
		return EffectivePlan{
			Tier:    tier,
			IsTrial: false,
			Plan:    r.catalog.LimitsFor(tier),
		}, nil
	}

	status, err := r.trials.Status(ctx, userID)
	if err != nil {
		return EffectivePlan{}, errors.Join(ErrFailedToResolve, err)
	}
	if status.Active {
		return EffectivePlan{
			Tier:    r.trialTier,
			IsTrial: true,
			Plan:    r.catalog.LimitsFor(r.trialTier),
		}, nil
	}

	return EffectivePlan{
		Tier:    plan.TierFree,
		IsTrial: false,
		Plan:    r.catalog.LimitsFor(plan.TierFree),
	}, nil
}

// HasPaidSubscription reports whether the user holds an active paid
// subscription. Satisfies trial.PaidSubscriptionCheck.
func (r *Resolver) HasPaidSubscription(ctx context.Context, userID uuid.UUID) (bool, error) {
	sub, err := r.subs.Get(ctx, userID)
	if errors.Is(err, ErrSubscriptionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sub.IsActive(), nil
}

// CanDowngrade checks whether the user's current usage fits inside the
// target tier's limits. usageOf returns the current-period consumption
// for a metered feature.
func (r *Resolver) CanDowngrade(ctx context.Context, userID uuid.UUID, target plan.Tier, usageOf func(ctx context.Context, userID uuid.UUID, f plan.Feature) (int64, error)) error {
	if !r.catalog.Has(target) {
		return ErrUnknownTier
	}

	current, err := r.Resolve(ctx, userID)
	if err != nil {
		return err
	}

	targetPlan := r.catalog.LimitsFor(target)
	cmp := plan.Compare(&current.Plan, &targetPlan)
	if cmp == nil || !cmp.HasDecreases() {
		return nil
	}

	if usageOf == nil {
		// No usage source means nothing to verify against, allow it.
		return nil
	}

	for feature, change := range cmp.DecreasedLimits {
		if change.To == plan.Unlimited {
			continue
		}
		used, err := usageOf(ctx, userID, feature)
		if err != nil {
			return errors.Join(ErrFailedToResolve, err)
		}
		if used > change.To {
			return ErrDowngradeNotPossible
		}
	}

	return nil
}
