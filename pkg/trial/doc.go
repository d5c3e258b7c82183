// Package trial implements the per-user trial lifecycle:
// NeverStarted -> Active -> Expired.
//
// The lifecycle is driven by three persisted fields (start date, end
// date, used flag) and wall-clock time; no background job ever runs.
// The used flag is a ratchet: once set it never reverts, so a user who
// subscribes and later cancels is not trial-eligible again.
//
// Start re-validates eligibility inside the store's conditional write
// rather than trusting the caller's earlier IsEligible check, closing
// the race between two concurrent start attempts: exactly one wins, the
// other receives ErrNotEligible.
//
// Basic usage:
//
//	svc := trial.NewService(store, hasPaidSubscription)
//
//	if ok, _ := svc.IsEligible(ctx, userID); ok {
//	    state, err := svc.Start(ctx, userID)
//	    if errors.Is(err, trial.ErrNotEligible) {
//	        // lost the race or already used
//	    }
//	    _ = state
//	}
package trial
