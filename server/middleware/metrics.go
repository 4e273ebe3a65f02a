package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/observability"
)

// Metrics records per-route request counts and durations. A nil m disables
// recording.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()
		m.RecordRequestStart(ctx)
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequestEnd(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
