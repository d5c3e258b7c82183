// Package usage enforces per-period business quotas for metered
// features: exports per month, AI reports per month, and so on.
//
// The API is deliberately two-step. CanPerform answers "is there quota
// left", the route performs its possibly-failing work, and only then
// does Increment commit the consumption as a single atomic add. Quota is
// therefore never charged for failed or aborted actions, at the cost of
// a narrow window where concurrent requests can overshoot the limit by
// the number of requests in flight; tight per-route rate limiting bounds
// that overshoot.
//
// Failure handling is asymmetric with the rate limiter on purpose: a
// ledger outage denies the action (fail closed), because paid-feature
// consumption must not silently become free during an outage.
//
// Period keys are calendar months in UTC ("2006-01"), derived purely
// from the wall clock, so a new month implicitly starts fresh zero
// records while history remains in place.
//
// Basic usage:
//
//	tracker := usage.NewTracker(ledger, resolver)
//
//	check, err := tracker.CanPerform(ctx, userID, plan.FeatureExports)
//	if err != nil || !check.Allowed {
//	    // deny, render upgrade prompt from check.Plan / check.Limit
//	}
//
//	// ... perform the export ...
//
//	if _, err := tracker.Increment(ctx, userID, plan.FeatureExports, 1); err != nil {
//	    // log; the export already happened
//	}
package usage
