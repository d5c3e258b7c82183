package trial

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence interface for trial fields.
type Store interface {
	// GetTrial returns the trial fields for a user. A user with no trial
	// history returns the zero State, not an error.
	GetTrial(ctx context.Context, userID uuid.UUID) (State, error)

	// WriteTrial persists new trial fields, but only if the stored Used
	// flag still equals expectedPriorUsed at write time. Returns false
	// when the guard fails, signalling a lost race. The conditional write
	// is what makes Start safe under concurrent calls; implementations
	// must evaluate the guard and the write as one atomic operation
	// (e.g. UPDATE ... WHERE has_used_trial = $expected).
	WriteTrial(ctx context.Context, userID uuid.UUID, expectedPriorUsed bool, s State) (bool, error)
}
