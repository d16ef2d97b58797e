package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"call-center-server/internal/infrastructure/metrics"
)

// Metrics records request latency per route template. Unmatched routes are
// labelled by raw path so 404 traffic stays visible without exploding
// cardinality on matched routes.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
