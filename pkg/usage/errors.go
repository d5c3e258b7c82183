package usage

import "errors"

var (
	// ErrFeatureNotMetered is returned when the feature has no quota entry
	// on the user's plan. Capability flags are checked at the gate, not here.
	ErrFeatureNotMetered = errors.New("feature is not metered on this plan")

	// ErrLedgerUnavailable wraps ledger failures. The tracker denies on it:
	// quota enforcement fails closed.
	ErrLedgerUnavailable = errors.New("usage ledger unavailable")

	// ErrInvalidAmount is returned for non-positive increment amounts.
	ErrInvalidAmount = errors.New("increment amount must be positive")
)
