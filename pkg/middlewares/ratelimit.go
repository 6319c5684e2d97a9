package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
)

// RateLimit rejects requests once the caller's budget is spent. Callers are keyed by the
// username header, falling back to the client IP.
func RateLimit(limiter *pkg.DistributedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetHeader(pkg.HeaderUsername)
		if subject == "" {
			subject = c.ClientIP()
		}
		if !limiter.Allow(c.Request.Context(), subject) {
			httpRequestsThrottled.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, pkg.ErrorResponse{
				Code:    "APP_RATE_LIMITED",
				Message: pkg.ErrRateLimitExceeded.Error(),
			})
			return
		}
		c.Next()
	}
}
