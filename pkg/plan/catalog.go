package plan

import (
	"context"
	"errors"
	"fmt"
)

// Catalog holds the fixed set of plans, loaded once at process start.
// The plan map is treated as immutable after construction; thread-safety
// depends on this immutability assumption.
type Catalog struct {
	plans map[Tier]Plan
}

// NewCatalog builds a Catalog from a Source. The catalogue must define a
// free plan: it is the total-function fallback for LimitsFor.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		panic("plan: Source is required")
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	return &Catalog{plans: plans}, nil
}

// LimitsFor returns the plan for the given tier. It is a total function:
// any unrecognized tier resolves to the free plan rather than an error,
// so legacy or unknown tier strings degrade instead of breaking requests.
func (c *Catalog) LimitsFor(tier Tier) Plan {
	if p, ok := c.plans[tier]; ok {
		return p.clone()
	}
	return c.plans[TierFree].clone()
}

// Has reports whether the tier is defined in the catalogue.
func (c *Catalog) Has(tier Tier) bool {
	_, ok := c.plans[tier]
	return ok
}

// Rank returns the tier's ordinal position for upgrade/downgrade
// comparisons. Unknown tiers rank as free.
func (c *Catalog) Rank(tier Tier) int {
	return tier.Rank()
}

// CanUpgrade reports whether a higher paid tier exists above the current one.
func (c *Catalog) CanUpgrade(current Tier) bool {
	highest := TierFree
	for tier := range c.plans {
		if tier.Rank() > highest.Rank() {
			highest = tier
		}
	}
	return current.Rank() < highest.Rank()
}

// Tiers returns the defined tiers ordered by rank.
func (c *Catalog) Tiers() []Tier {
	tiers := make([]Tier, 0, len(c.plans))
	for tier := range c.plans {
		tiers = append(tiers, tier)
	}
	for i := range tiers {
		for j := i + 1; j < len(tiers); j++ {
			if tiers[j].Rank() < tiers[i].Rank() {
				tiers[i], tiers[j] = tiers[j], tiers[i]
			}
		}
	}
	return tiers
}

// validatePlans ensures plan configurations are internally consistent.
// Catches common configuration errors early to prevent runtime issues.
func validatePlans(plans map[Tier]Plan) error {
	if len(plans) == 0 {
		return errors.Join(ErrInvalidCatalog, errors.New("no plans defined"))
	}

	if _, ok := plans[TierFree]; !ok {
		return errors.Join(ErrInvalidCatalog, ErrMissingFreePlan)
	}

	for tier, p := range plans {
		if p.Tier != tier {
			return errors.Join(ErrInvalidCatalog,
				fmt.Errorf("tier mismatch: map key %s != plan.Tier %s", tier, p.Tier))
		}

		for feature, limit := range p.Limits {
			if limit < Unlimited {
				return errors.Join(ErrInvalidCatalog,
					fmt.Errorf("plan %s has invalid limit for %s: %d", tier, feature, limit))
			}
		}
	}
	return nil
}
