// Package ratelimit implements sliding-window request limiting.
package ratelimit

import (
	"context"
	"time"
)

// Policy is a request budget over a sliding window. A non-positive Limit
// disables limiting.
type Policy struct {
	Limit  int
	Window time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, policy Policy) (bool, error)
	Remaining(ctx context.Context, key string, policy Policy) (int64, error)
	Reset(ctx context.Context, key string) error
}
