package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginThrottle caps login attempts per client IP inside a rolling window,
// backed by a Redis counter with a TTL. Redis being down fails open: login
// availability beats throttling.
func LoginThrottle(rdb *redis.Client, logger *slog.Logger, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "login_attempts:" + c.ClientIP()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("login throttle unavailable, skipping", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("failed to set throttle window", "error", err)
			}
		}

		if count > limit {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}
