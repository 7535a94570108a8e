package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/pollwise/survey-intake-api/pkg/errors"
	"github.com/pollwise/survey-intake-api/pkg/response"
)

// RateLimit returns a fixed-window per-IP limiter backed by Redis. When the
// client is nil or Redis is unreachable the limiter fails open: intake
// availability wins over throttling accuracy.
func RateLimit(client *redis.Client, perMinute int, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if client == nil || perMinute <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, time.Minute).Err(); err != nil {
				logger.Warn("failed to set rate limit window", zap.Error(err))
			}
		}
		if count > int64(perMinute) {
			response.Error(c, appErrors.ErrRateLimited)
			c.Abort()
			return
		}

		c.Next()
	}
}
