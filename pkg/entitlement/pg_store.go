package entitlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/gatekit/pkg/pg"
	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// PGStore implements SubscriptionStore on top of a pgx connection pool.
//
// Expected schema (see pkg/usage/migrations):
//
//	CREATE TABLE subscriptions (
//	    user_id                  UUID PRIMARY KEY,
//	    plan_id                  TEXT NOT NULL,
//	    status                   TEXT NOT NULL,
//	    current_period_end       TIMESTAMPTZ,
//	    cancel_at_period_end     BOOLEAN NOT NULL DEFAULT FALSE,
//	    provider_customer_id     TEXT NOT NULL DEFAULT '',
//	    provider_subscription_id TEXT NOT NULL DEFAULT '',
//	    created_at               TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at               TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres-backed subscription store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("entitlement: pgxpool.Pool is required")
	}
	return &PGStore{pool: pool}
}

func (s *PGStore) Get(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	const q = `
		SELECT user_id, plan_id, status, current_period_end, cancel_at_period_end,
		       provider_customer_id, provider_subscription_id, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1`

	var (
		sub    Subscription
		planID string
		status string
	)
	err := s.pool.QueryRow(ctx, q, userID).Scan(
		&sub.UserID, &planID, &status, &sub.CurrentPeriodEnd, &sub.CancelAtPeriodEnd,
		&sub.ProviderCustomerID, &sub.ProviderSubscriptionID, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}

	sub.PlanID = plan.Tier(planID)
	sub.Status = Status(status)
	return &sub, nil
}

// Save upserts the subscription row, keyed by user_id.
func (s *PGStore) Save(ctx context.Context, sub *Subscription) error {
	const q = `
		INSERT INTO subscriptions (
			user_id, plan_id, status, current_period_end, cancel_at_period_end,
			provider_customer_id, provider_subscription_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			status = EXCLUDED.status,
			current_period_end = EXCLUDED.current_period_end,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end,
			provider_customer_id = EXCLUDED.provider_customer_id,
			provider_subscription_id = EXCLUDED.provider_subscription_id,
			updated_at = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, q,
		sub.UserID, string(sub.PlanID), string(sub.Status), sub.CurrentPeriodEnd,
		sub.CancelAtPeriodEnd, sub.ProviderCustomerID, sub.ProviderSubscriptionID,
		sub.CreatedAt, sub.UpdatedAt,
	)
	return err
}
