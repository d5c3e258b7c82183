package usage

import (
	"time"

	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// Period identifies one accounting period. Periods are derived purely
// from wall-clock time, so rollover needs no migration or cron: the
// first read or write of a new month simply addresses a new,
// implicitly-zero record.
type Period string

// CurrentPeriod returns the calendar-month period containing now, in UTC.
func CurrentPeriod(now time.Time) Period {
	return Period(now.UTC().Format("2006-01"))
}

// CheckResult is the outcome of a quota check.
type CheckResult struct {
	Allowed      bool
	CurrentUsage int64
	Limit        int64
	Plan         plan.Tier
	IsTrial      bool
}

// IncrementResult reports an increment's outcome, including both the
// pre- and post-increment within-limit classification so a caller can
// detect the commit that pushed the user over the limit without a
// second read.
type IncrementResult struct {
	NewCount         int64
	WasWithinLimit   bool
	IsNowWithinLimit bool
}

// FeatureUsage pairs current consumption with the plan limit for one
// metered feature.
type FeatureUsage struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}
