package usage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/gatekit/pkg/pg"
	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// PGLedger implements Ledger on top of a pgx connection pool. The
// counter advance is a single upsert-increment statement, so concurrent
// requests from the same user serialize in the database rather than
// losing updates. Old periods are never reset; each month lazily creates
// fresh rows and history stays queryable.
//
// Schema lives in pkg/usage/migrations.
type PGLedger struct {
	pool *pgxpool.Pool
}

// NewPGLedger creates a Postgres-backed usage ledger.
func NewPGLedger(pool *pgxpool.Pool) *PGLedger {
	if pool == nil {
		panic("usage: pgxpool.Pool is required")
	}
	return &PGLedger{pool: pool}
}

func (l *PGLedger) ReadCount(ctx context.Context, userID uuid.UUID, feature plan.Feature, period Period) (int64, error) {
	const q = `
		SELECT count FROM usage_records
		WHERE user_id = $1 AND feature = $2 AND period = $3`

	var count int64
	err := l.pool.QueryRow(ctx, q, userID, string(feature), string(period)).Scan(&count)
	if pg.IsNotFoundError(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AtomicAdd advances the counter and returns the new total in one statement.
func (l *PGLedger) AtomicAdd(ctx context.Context, userID uuid.UUID, feature plan.Feature, period Period, amount int64) (int64, error) {
	const q = `
		INSERT INTO usage_records (user_id, feature, period, count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, feature, period)
		DO UPDATE SET count = usage_records.count + EXCLUDED.count,
		              updated_at = now()
		RETURNING count`

	var count int64
	err := l.pool.QueryRow(ctx, q, userID, string(feature), string(period), amount).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
