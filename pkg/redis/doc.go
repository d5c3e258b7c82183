// Package redis connects the process to the Redis server backing the
// rate limiter's counter store.
//
// It wraps github.com/redis/go-redis/v9 with a retrying Connect bounded
// by a configurable timeout, a Config struct populated from environment
// variables via pkg/config, and a Healthcheck helper for readiness
// probes.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatalf("redis: %v", err)
//	}
//	defer client.Close()
//
//	store := ratelimit.NewRedisStore(client)
//
// Sentinel errors (ErrRedisNotReady, ErrFailedToParseRedisConnString,
// ErrHealthcheckFailed) wrap the driver errors with errors.Join so both
// layers stay inspectable with errors.Is.
package redis
