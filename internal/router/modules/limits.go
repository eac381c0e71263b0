package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-course-admin/internal/container"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
)

// limit builds a Redis-backed limiter; it passes everything through when rate
// limiting is disabled or no Redis client is configured.
func limit(max int, window time.Duration, key middleware.KeyFunc, allow middleware.AllowFunc) gin.HandlerFunc {
	var rdb *redis.Client
	if cfg := container.GetConfig(); cfg == nil || cfg.RateLimitEnabled {
		rdb = container.GetRedis()
	}
	return middleware.RateLimit(rdb, max, window, key, allow)
}

// GlobalLimiter caps every /api request per client IP.
func GlobalLimiter() gin.HandlerFunc {
	return limit(600, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
}
