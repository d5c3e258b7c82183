package plan

import (
	"context"
)

// Source defines how plans are loaded into the catalogue.
type Source interface {
	Load(ctx context.Context) (map[Tier]Plan, error)
}

// inMemSource implements the Source interface using a static plan map.
type inMemSource struct {
	plans map[Tier]Plan
}

// NewInMemSource returns a Source backed by a deep copy of the given plans.
func NewInMemSource(plans map[Tier]Plan) Source {
	plansCopy := make(map[Tier]Plan, len(plans))
	for tier, p := range plans {
		plansCopy[tier] = p.clone()
	}
	return &inMemSource{plans: plansCopy}
}

// Load returns a copy of all plans from memory.
func (s *inMemSource) Load(_ context.Context) (map[Tier]Plan, error) {
	plansCopy := make(map[Tier]Plan, len(s.plans))
	for tier, p := range s.plans {
		plansCopy[tier] = p.clone()
	}
	return plansCopy, nil
}

// DefaultSource returns the product's built-in four-tier catalogue.
// Paid tiers are supersets of the tiers below them; the free tier has
// no export capability by design.
func DefaultSource() Source {
	return NewInMemSource(map[Tier]Plan{
		TierFree: {
			Tier: TierFree,
			Name: "Free",
			Limits: map[Feature]int64{
				FeatureAIReports:   1,
				FeatureAPIRequests: 100,
			},
			Capabilities: []Feature{},
		},
		TierBasic: {
			Tier: TierBasic,
			Name: "Basic",
			Limits: map[Feature]int64{
				FeatureExports:     3,
				FeatureAIReports:   10,
				FeatureAPIRequests: 1000,
			},
			Capabilities: []Feature{FeatureViewHistory},
		},
		TierPremium: {
			Tier: TierPremium,
			Name: "Premium",
			Limits: map[Feature]int64{
				FeatureExports:     Unlimited,
				FeatureAIReports:   100,
				FeatureAPIRequests: 10000,
			},
			Capabilities: []Feature{FeatureViewHistory, FeatureIntegrations},
		},
		TierEnterprise: {
			Tier: TierEnterprise,
			Name: "Enterprise",
			Limits: map[Feature]int64{
				FeatureExports:     Unlimited,
				FeatureAIReports:   Unlimited,
				FeatureAPIRequests: Unlimited,
			},
			Capabilities: []Feature{FeatureViewHistory, FeatureIntegrations},
		},
	})
}
