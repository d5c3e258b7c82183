package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/ratelimit"
)

// newTestRedisStore creates a RedisStore backed by a miniredis server.
func newTestRedisStore(t *testing.T) (*ratelimit.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return ratelimit.NewRedisStore(client, ratelimit.WithKeyPrefix("test:")), mr
}

func TestRedisStoreIncrementAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("increments and reports TTL", func(t *testing.T) {
		t.Parallel()
		store, mr := newTestRedisStore(t)

		current, ttl, err := store.IncrementAndGet(ctx, "user-a", 1, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), current)
		assert.Positive(t, ttl)
		assert.LessOrEqual(t, ttl, time.Minute)

		current, _, err = store.IncrementAndGet(ctx, "user-a", 1, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(2), current)

		assert.Positive(t, mr.TTL("test:user-a"))
	})

	t.Run("TTL is pinned by the first increment", func(t *testing.T) {
		t.Parallel()
		store, mr := newTestRedisStore(t)

		_, _, err := store.IncrementAndGet(ctx, "user-b", 1, time.Minute)
		require.NoError(t, err)

		mr.FastForward(30 * time.Second)

		// EXPIRE NX must not extend the existing window.
		_, ttl, err := store.IncrementAndGet(ctx, "user-b", 1, time.Minute)
		require.NoError(t, err)
		assert.LessOrEqual(t, ttl, 30*time.Second)
	})

	t.Run("window expiry starts a fresh counter", func(t *testing.T) {
		t.Parallel()
		store, mr := newTestRedisStore(t)

		for range 3 {
			_, _, err := store.IncrementAndGet(ctx, "user-c", 1, time.Minute)
			require.NoError(t, err)
		}

		mr.FastForward(61 * time.Second)

		current, _, err := store.IncrementAndGet(ctx, "user-c", 1, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), current)
	})

	t.Run("server down returns error", func(t *testing.T) {
		t.Parallel()
		store, mr := newTestRedisStore(t)
		mr.Close()

		_, _, err := store.IncrementAndGet(ctx, "user-d", 1, time.Minute)
		assert.Error(t, err)
	})
}

func TestRedisStoreDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	_, _, err := store.IncrementAndGet(ctx, "user-e", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, mr.Exists("test:user-e"))

	require.NoError(t, store.Delete(ctx, "user-e"))
	assert.False(t, mr.Exists("test:user-e"))
}

func TestFixedWindowWithRedis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestRedisStore(t)
	limiter, err := ratelimit.NewFixedWindow(store)
	require.NoError(t, err)

	spec := ratelimit.Spec{Limit: 5, Window: time.Minute}

	denials := 0
	for range 6 {
		result, err := limiter.Check(ctx, "user-f", spec)
		require.NoError(t, err)
		if !result.Allowed {
			denials++
		}
	}
	assert.Equal(t, 1, denials)

	// After the window elapses, the 7th call succeeds.
	mr.FastForward(61 * time.Second)
	result, err := limiter.Check(ctx, "user-f", spec)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
