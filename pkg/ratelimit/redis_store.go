package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis client methods the store uses.
// Keeping it as an interface enables mocking in tests.
type RedisClient interface {
	Pipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore implements Store on a shared Redis instance, so window
// counters are enforced across all application instances. INCR plus
// EXPIRE NX keeps the operation atomic per key: the TTL is set exactly
// once, when the window's first request creates the counter.
type RedisStore struct {
	client RedisClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the key namespace. Defaults to "ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed counter store.
func NewRedisStore(client RedisClient, opts ...RedisStoreOption) *RedisStore {
	if client == nil {
		panic("ratelimit: redis client is required")
	}

	s := &RedisStore{
		client: client,
		prefix: "ratelimit:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IncrementAndGet atomically increments the window counter, pinning the
// TTL on first increment and reading the remaining TTL in the same
// round trip.
func (s *RedisStore) IncrementAndGet(ctx context.Context, key string, incr int, window time.Duration) (int64, time.Duration, error) {
	rkey := s.prefix + key

	var (
		incrCmd *redis.IntCmd
		ttlCmd  *redis.DurationCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incrCmd = pipe.IncrBy(ctx, rkey, int64(incr))
		pipe.ExpireNX(ctx, rkey, window)
		ttlCmd = pipe.PTTL(ctx, rkey)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	ttl := ttlCmd.Val()
	if ttl < 0 {
		// PTTL reports -1 for keys without expiry; treat as a full window.
		ttl = window
	}
	return incrCmd.Val(), ttl, nil
}

// Delete removes the window counter for the given key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
