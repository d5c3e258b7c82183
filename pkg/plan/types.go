package plan

// Tier identifies a pricing tier. Tiers form a total order used for
// upgrade/downgrade comparisons; see Rank.
type Tier string

const (
	TierFree       Tier = "free"
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

// tierRanks defines the ordinal position of each known tier.
// Unknown tiers rank as free so comparisons stay total.
var tierRanks = map[Tier]int{
	TierFree:       0,
	TierBasic:      1,
	TierPremium:    2,
	TierEnterprise: 3,
}

// Rank returns the tier's ordinal position in the upgrade ladder.
// Unrecognized tiers rank as free.
func (t Tier) Rank() int {
	return tierRanks[t]
}

// IsKnown reports whether the tier is a member of the fixed tier set.
func (t Tier) IsKnown() bool {
	_, ok := tierRanks[t]
	return ok
}

// Feature is a named capability or metered quota key.
// Metered features appear in Plan.Limits; boolean capability flags
// appear in Plan.Capabilities.
type Feature string

const (
	FeatureExports     Feature = "exports"
	FeatureAIReports   Feature = "ai_reports"
	FeatureAPIRequests Feature = "api_requests"
	FeatureViewHistory Feature = "view_history"
	FeatureIntegrations Feature = "integrations"
)

const (
	// Unlimited indicates no limit for a metered feature (-1 chosen for SQL compatibility).
	Unlimited int64 = -1
)
