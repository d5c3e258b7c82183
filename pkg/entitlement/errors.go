package entitlement

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrFailedToResolve      = errors.New("failed to resolve effective plan")
	ErrUnknownTier          = errors.New("unknown plan tier")
	ErrDowngradeNotPossible = errors.New("downgrade not possible with current usage")
)
