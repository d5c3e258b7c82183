package trial

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PaidSubscriptionCheck reports whether the user currently holds an
// active paid subscription. Injected as a function to keep this package
// decoupled from the subscription store.
type PaidSubscriptionCheck func(ctx context.Context, userID uuid.UUID) (bool, error)

// Service manages the per-user trial lifecycle:
// NeverStarted -> Active -> Expired. The Used ratchet guarantees at most
// one trial per user, ever.
type Service struct {
	store    Store
	hasPaid  PaidSubscriptionCheck
	duration time.Duration
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithDuration overrides the trial length.
func WithDuration(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.duration = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a trial Service. Panics on nil dependencies to fail
// fast during initialization.
func NewService(store Store, hasPaid PaidSubscriptionCheck, opts ...Option) *Service {
	if store == nil {
		panic("trial: Store is required")
	}
	if hasPaid == nil {
		panic("trial: PaidSubscriptionCheck is required")
	}

	s := &Service{
		store:    store,
		hasPaid:  hasPaid,
		duration: DefaultDuration,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsEligible reports whether the user may start a trial: the Used ratchet
// must be unset and the user must hold no active paid subscription. Pure
// read, no side effects. Note that a favourable answer here is advisory:
// Start re-validates atomically at write time.
func (s *Service) IsEligible(ctx context.Context, userID uuid.UUID) (bool, error) {
	state, err := s.store.GetTrial(ctx, userID)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}
	if state.Used {
		return false, nil
	}

	paid, err := s.hasPaid(ctx, userID)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}
	return !paid, nil
}

// Start begins the user's one and only trial. Eligibility is re-checked
// inside the conditional write: the store only persists the new fields if
// Used is still false, so two concurrent Start calls cannot both succeed.
// Returns ErrNotEligible if the user already used a trial (including a
// race lost to a concurrent Start) or holds a paid subscription.
func (s *Service) Start(ctx context.Context, userID uuid.UUID) (State, error) {
	eligible, err := s.IsEligible(ctx, userID)
	if err != nil {
		return State{}, err
	}
	if !eligible {
		return State{}, ErrNotEligible
	}

	now := s.now().UTC()
	ends := now.Add(s.duration)
	next := State{
		StartedAt: &now,
		EndsAt:    &ends,
		Used:      true,
	}

	ok, err := s.store.WriteTrial(ctx, userID, false, next)
	if err != nil {
		return State{}, errors.Join(ErrStoreFailure, err)
	}
	if !ok {
		// Guard failed at write time: someone else started the trial first.
		return State{}, ErrNotEligible
	}

	return next, nil
}

// Status returns the read-only classification of the user's trial.
func (s *Service) Status(ctx context.Context, userID uuid.UUID) (Status, error) {
	state, err := s.store.GetTrial(ctx, userID)
	if err != nil {
		return Status{}, errors.Join(ErrStoreFailure, err)
	}

	now := s.now().UTC()
	return Status{
		Phase:         state.PhaseAt(now),
		Active:        state.IsActiveAt(now),
		DaysRemaining: state.DaysRemainingAt(now),
		EndsAt:        state.EndsAt,
	}, nil
}
