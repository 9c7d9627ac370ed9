package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crmsuite/backend/internal/infrastructure/telemetry"
)

// Metrics records request count and latency per route. Pass nil metrics
// to get a no-op middleware.
func Metrics(metrics *telemetry.HTTPMetrics) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.Record(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
