package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger attaches a request-scoped logger to the context under
// "logger" and logs every request once it completes.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		ip := getClientIP(c)

		reqLogger := base.With(zap.String("method", c.Request.Method), zap.String("path", path))
		c.Set("logger", reqLogger)

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", ip),
		}
		if id, ok := c.Get(ContextUserID); ok {
			fields = append(fields, zap.Any("userID", id))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLogger.Error("Request completed", fields...)
		case status >= 400:
			reqLogger.Warn("Request completed", fields...)
		default:
			reqLogger.Info("Request completed", fields...)
		}
	}
}
