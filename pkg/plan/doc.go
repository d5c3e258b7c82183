// Package plan provides the static pricing-tier catalogue: an ordered set
// of tiers, each with metered feature quotas and boolean capability flags.
//
// The catalogue is pure data, loaded once at process start from a Source
// (in-memory or YAML file) and immutable afterwards. LimitsFor is a total
// function: unrecognized tiers resolve to the free plan rather than an
// error, so legacy plan strings stored alongside old subscriptions keep
// working after a catalogue change.
//
// Key concepts:
//
//   - Tier: one of the fixed set {free, basic, premium, enterprise},
//     ordered by Rank for upgrade/downgrade comparisons
//   - Feature: a named entitlement; metered features carry an int64 limit
//     (-1 = unlimited), capability flags are boolean
//   - Plan: one tier's limits and capabilities
//
// Basic usage:
//
//	catalog, err := plan.NewCatalog(ctx, plan.DefaultSource())
//	if err != nil {
//	    // misconfigured catalogue, refuse to start
//	}
//
//	p := catalog.LimitsFor(plan.TierBasic)
//	if !p.Can(plan.FeatureExports) {
//	    // plan forbids exporting outright
//	}
//	if limit, ok := p.LimitFor(plan.FeatureExports); ok && limit != plan.Unlimited {
//	    // metered: enforce via the usage tracker
//	}
package plan
