package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelcare/internal/app/models/dto"
)

// Limiter decides whether another attempt under key is allowed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LoginThrottle caps login attempts per client IP and route. A nil limiter disables it.
// When the limiter itself fails the request is let through.
func LoginThrottle(limiter Limiter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := "login:" + c.FullPath() + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Login throttle unavailable")
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrorCodeTooManyRequests, "Too many login attempts, try again later"))
			return
		}

		c.Next()
	}
}
