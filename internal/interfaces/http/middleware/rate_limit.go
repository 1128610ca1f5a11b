package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"shopgate.backend/pkg/logger"
	"shopgate.backend/pkg/redis"

	"go.uber.org/zap"
)

// LoginRateLimit throttles requests per client address using the injected
// limiter. If Redis is unreachable the request is allowed through: the
// limiter is a soft mitigation and must not become an availability
// dependency for login.
func LoginRateLimit(limiter *redis.LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
		c.Next()
	}
}
