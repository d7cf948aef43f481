package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelops/internal/infrastructure/ratelimit"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

// RateLimit limits requests per client IP. When the limiter itself fails
// the request is let through.
func RateLimit(limiter ratelimit.RateLimiter, policy ratelimit.Policy, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, key, policy)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}
		if remaining, err := limiter.Remaining(ctx, key, policy); err == nil {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
