package trial

import "errors"

var (
	// ErrNotEligible is returned when a trial cannot be started: the user
	// already used their trial, lost a concurrent start race, or holds an
	// active paid subscription.
	ErrNotEligible = errors.New("user is not eligible for a trial")

	// ErrStoreFailure wraps underlying storage errors.
	ErrStoreFailure = errors.New("trial store failure")
)
