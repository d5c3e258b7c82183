// Package pg bootstraps the PostgreSQL layer backing the subscription
// store and the usage ledger.
//
// It wraps pgx/v5 for pooled connectivity and goose/v3 for schema
// migrations behind a small surface:
//
//   - Config, populated from environment variables via pkg/config,
//     controls pool limits, retry cadence, and migration paths.
//   - Connect opens a *pgxpool.Pool, retrying with linear backoff while
//     the database comes up.
//   - Migrate applies the goose migrations (see pkg/usage/migrations),
//     routing goose's output through the application logger.
//   - Healthcheck adapts a pool ping to the func(context.Context) error
//     shape readiness probes expect.
//
// Error helpers (IsNotFoundError, IsDuplicateKeyError, and friends)
// classify driver errors so stores can translate them into their own
// sentinels without importing pgx internals.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatalf("postgres: %v", err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    log.Fatalf("migrations: %v", err)
//	}
//
//	subs := entitlement.NewPGStore(pool)
//	ledger := usage.NewPGLedger(pool)
package pg
