package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	policy := Policy{Limit: 3, Window: time.Minute}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "query:10.0.0.1", policy)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "query:10.0.0.1", policy)
	require.NoError(t, err)
	assert.False(t, allowed, "4th request should be denied")

	allowed, err = limiter.Allow(ctx, "query:10.0.0.2", policy)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are unaffected")
}

func TestRedisRateLimiter_RemainingAndReset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	policy := Policy{Limit: 5, Window: time.Minute}

	remaining, err := limiter.Remaining(ctx, "k", policy)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining)

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, "k", policy)
		require.NoError(t, err)
	}
	remaining, err = limiter.Remaining(ctx, "k", policy)
	require.NoError(t, err)
	assert.Equal(t, int64(3), remaining)

	require.NoError(t, limiter.Reset(ctx, "k"))
	remaining, err = limiter.Remaining(ctx, "k", policy)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining)
}

func TestRedisRateLimiter_DisabledPolicy(t *testing.T) {
	limiter := NewRedisRateLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))

	allowed, err := limiter.Allow(context.Background(), "any", Policy{})
	require.NoError(t, err)
	assert.True(t, allowed)
}
