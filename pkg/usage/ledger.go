package usage

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// Ledger defines the storage interface for per-user, per-feature,
// per-period counters. Counts are monotonically non-decreasing within a
// period and are only ever advanced through AtomicAdd, never via a
// separate read-then-write, so concurrent requests cannot lose updates.
type Ledger interface {
	// ReadCount returns the consumed count for the period. A never-used
	// (user, feature, period) combination reads as zero, not an error.
	ReadCount(ctx context.Context, userID uuid.UUID, feature plan.Feature, period Period) (int64, error)

	// AtomicAdd adds amount to the period's counter as a single atomic
	// operation and returns the new total.
	AtomicAdd(ctx context.Context, userID uuid.UUID, feature plan.Feature, period Period, amount int64) (int64, error)
}
