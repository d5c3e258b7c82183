package entitlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// Status represents the current state of a subscription.
type Status string

const (
	StatusActive    Status = "active"
	StatusTrialing  Status = "trialing"
	StatusCancelled Status = "cancelled"
	StatusSuspended Status = "suspended"
)

// Subscription represents a user's billing subscription. Each user has at
// most one subscription; UserID serves as the primary key. The record is
// created on first successful checkout and mutated by billing webhook
// facts, neither of which happens in this module.
type Subscription struct {
	UserID                 uuid.UUID
	PlanID                 plan.Tier // may hold a legacy value unknown to the catalogue
	Status                 Status
	CurrentPeriodEnd       *time.Time
	CancelAtPeriodEnd      bool
	ProviderCustomerID     string
	ProviderSubscriptionID string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsActive returns true if the subscription is active (paid).
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// IsCancelled returns true if the subscription is cancelled.
func (s *Subscription) IsCancelled() bool {
	return s.Status == StatusCancelled
}
