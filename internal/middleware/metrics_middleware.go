package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rcastro/tutormatch/internal/pkg/metrics"
)

// Metrics records request count and latency per route. The route template is
// used rather than the raw path so IDs do not explode the label space.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
