package middleware

import (
	"strconv"
	"time"

	"course_market/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware Prometheus 请求指标采集
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 使用路由模板而不是原始路径，避免标签爆炸
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RequestTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.RequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
