package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"presentation-service-go/internal/pkg/logger"
)

// RequestTracker принимает сведения о запросах
type RequestTracker interface {
	TrackRequest(path, method string, duration time.Duration, success bool)
}

// StatisticsMiddleware учитывает POST запросы, путь которых начинается с prefix
func StatisticsMiddleware(tracker RequestTracker, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		if tracker == nil || method != "POST" || !strings.HasPrefix(path, prefix) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		// 2xx и 3xx считаются успешными
		status := c.Writer.Status()
		success := status >= 200 && status < 400

		logger.Debug("Request statistics",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Bool("success", success),
			zap.Duration("duration", duration),
		)
		tracker.TrackRequest(path, method, duration, success)
	}
}
