package plan

import "slices"

// Plan describes one pricing tier's entitlements: per-feature metered
// quotas and boolean capability flags.
type Plan struct {
	Tier         Tier
	Name         string
	Limits       map[Feature]int64 // -1 represents unlimited
	Capabilities []Feature         // boolean, non-counted flags
}

// Can reports whether the plan grants the feature at all, either as a
// capability flag or as a metered quota entry. A metered entry with a
// zero limit still counts as granted; the quota check decides whether
// any use remains.
func (p Plan) Can(f Feature) bool {
	if slices.Contains(p.Capabilities, f) {
		return true
	}
	_, metered := p.Limits[f]
	return metered
}

// LimitFor returns the metered limit for the feature and whether the
// feature is metered on this plan.
func (p Plan) LimitFor(f Feature) (int64, bool) {
	limit, ok := p.Limits[f]
	return limit, ok
}

// clone returns a deep copy so catalogue consumers cannot mutate shared state.
func (p Plan) clone() Plan {
	cp := p
	if p.Limits != nil {
		cp.Limits = make(map[Feature]int64, len(p.Limits))
		for f, l := range p.Limits {
			cp.Limits[f] = l
		}
	}
	cp.Capabilities = slices.Clone(p.Capabilities)
	return cp
}

// Change represents a limit change between two plans for one feature.
type Change struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// Comparison contains the differences between two plans.
// Used to validate downgrades and communicate changes to users.
type Comparison struct {
	NewCapabilities  []Feature
	LostCapabilities []Feature
	IncreasedLimits  map[Feature]Change
	DecreasedLimits  map[Feature]Change
	NewFeatures      map[Feature]int64
	RemovedFeatures  map[Feature]int64
}

// HasDecreases returns true if any metered limits shrink or disappear.
func (c *Comparison) HasDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.RemovedFeatures) > 0
}

// Compare returns the differences between current and target plans.
func Compare(current, target *Plan) *Comparison {
	if current == nil || target == nil {
		return nil
	}

	cmp := &Comparison{
		NewCapabilities:  make([]Feature, 0),
		LostCapabilities: make([]Feature, 0),
		IncreasedLimits:  make(map[Feature]Change),
		DecreasedLimits:  make(map[Feature]Change),
		NewFeatures:      make(map[Feature]int64),
		RemovedFeatures:  make(map[Feature]int64),
	}

	for _, f := range target.Capabilities {
		if !slices.Contains(current.Capabilities, f) {
			cmp.NewCapabilities = append(cmp.NewCapabilities, f)
		}
	}
	for _, f := range current.Capabilities {
		if !slices.Contains(target.Capabilities, f) {
			cmp.LostCapabilities = append(cmp.LostCapabilities, f)
		}
	}

	for feature, targetLimit := range target.Limits {
		currentLimit, exists := current.Limits[feature]
		if !exists {
			cmp.NewFeatures[feature] = targetLimit
			continue
		}

		if targetLimit != currentLimit {
			change := Change{From: currentLimit, To: targetLimit}

			// Treat unlimited-to-limited as a decrease to prevent accidental
			// loss of unlimited access
			if currentLimit == Unlimited {
				cmp.DecreasedLimits[feature] = change
			} else if targetLimit == Unlimited {
				cmp.IncreasedLimits[feature] = change
			} else if targetLimit > currentLimit {
				cmp.IncreasedLimits[feature] = change
			} else {
				cmp.DecreasedLimits[feature] = change
			}
		}
	}

	for feature, currentLimit := range current.Limits {
		if _, exists := target.Limits[feature]; !exists {
			cmp.RemovedFeatures[feature] = currentLimit
		}
	}

	return cmp
}
