package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"presentation-service-go/internal/metrics"
	pkgmetrics "presentation-service-go/internal/pkg/metrics"
)

// PrometheusMiddleware собирает метрики для каждого запроса
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// шаблон маршрута, чтобы id файлов не размножали серии
		operation := c.FullPath()
		if operation == "" {
			operation = "unmatched"
		}
		code := c.Writer.Status()
		status := strconv.Itoa(code)
		duration := time.Since(start).Seconds()

		metrics.RequestsTotal.WithLabelValues(status, operation).Inc()
		metrics.RequestDuration.WithLabelValues(operation).Observe(duration)
		pkgmetrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, operation, status).Inc()
		pkgmetrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, operation).Observe(duration)

		if code >= 400 {
			errorType := "server_error"
			if code < 500 {
				errorType = "client_error"
			}
			metrics.ErrorsTotal.WithLabelValues(errorType, operation).Inc()
		}
	}
}
