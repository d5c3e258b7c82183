package trial

import (
	"time"
)

// DefaultDuration is the trial length applied by Service.Start unless
// overridden with WithDuration.
const DefaultDuration = 14 * 24 * time.Hour

// Phase classifies a trial's lifecycle position at a point in time.
type Phase string

const (
	PhaseNeverStarted Phase = "never_started"
	PhaseActive       Phase = "active"
	PhaseExpired      Phase = "expired"
)

// State holds the persisted trial fields on a user record. All-zero
// state means the user never started a trial. Used is a ratchet: once
// true it never reverts, even if the date fields are cleared by a data
// migration.
type State struct {
	StartedAt *time.Time
	EndsAt    *time.Time
	Used      bool
}

// IsActiveAt reports whether the trial window covers the given instant.
func (s State) IsActiveAt(now time.Time) bool {
	if s.StartedAt == nil || s.EndsAt == nil {
		return false
	}
	return now.Before(*s.EndsAt)
}

// PhaseAt classifies the trial at the given instant.
func (s State) PhaseAt(now time.Time) Phase {
	switch {
	case s.StartedAt == nil && !s.Used:
		return PhaseNeverStarted
	case s.IsActiveAt(now):
		return PhaseActive
	default:
		return PhaseExpired
	}
}

// DaysRemainingAt returns the whole days left in the trial at the given
// instant, rounding partial days up. Returns 0 for inactive trials.
func (s State) DaysRemainingAt(now time.Time) int {
	if !s.IsActiveAt(now) {
		return 0
	}

	remaining := s.EndsAt.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// Status is the read-only classification returned by Service.Status.
type Status struct {
	Phase         Phase
	Active        bool
	DaysRemaining int
	EndsAt        *time.Time
}
