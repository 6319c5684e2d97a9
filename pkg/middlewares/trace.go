package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/utils"
)

// TraceID returns Gin middleware to handle trace IDs for observability.
// The id is stored on the gin context and on the request context for the layers below.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.Request.Header.Get(pkg.HeaderTraceId)
		if utils.IsEmpty(traceID) {
			traceID = uuid.New().String()
		}
		c.Set(pkg.TraceId, traceID)
		c.Request = c.Request.WithContext(pkg.WithTraceID(c.Request.Context(), traceID))
		c.Writer.Header().Set(pkg.HeaderTraceId, traceID)
		c.Next()
	}
}
