package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hotelops:ratelimit"

// RedisRateLimiter keeps one sorted set per key, scored by request time.
type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client}
}

// Allow records the request and reports whether it fits the policy.
// Rejected requests are recorded too, so a client hammering the endpoint
// stays limited until it backs off.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, policy Policy) (bool, error) {
	if policy.Limit <= 0 || policy.Window <= 0 {
		return true, nil
	}

	now := time.Now()
	redisKey := l.key(key)
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(now.Add(-policy.Window).UnixNano(), 10))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, policy.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}
	return zcard.Val() < int64(policy.Limit), nil
}

// Remaining returns how many more requests the policy admits right now.
func (l *RedisRateLimiter) Remaining(ctx context.Context, key string, policy Policy) (int64, error) {
	redisKey := l.key(key)
	windowStart := time.Now().Add(-policy.Window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	zcard := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to get remaining: %w", err)
	}

	left := int64(policy.Limit) - zcard.Val()
	if left < 0 {
		left = 0
	}
	return left, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}
	return nil
}

func (l *RedisRateLimiter) key(identifier string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, identifier)
}
