package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIdHeader     = "X-Request-ID"
	requestIdContextKey = "request_id"
)

// Reuses the caller's request id when present, otherwise assigns a fresh UUID
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}

		c.Set(requestIdContextKey, requestId)
		c.Writer.Header().Set(requestIdHeader, requestId)

		c.Next()
	}
}

func requestIdValue(c *gin.Context) string {
	return c.GetString(requestIdContextKey)
}

func Logging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if requestId := requestIdValue(c); requestId != "" {
			fields = append(fields, zap.String("request_id", requestId))
		}

		logger.Info("http_request", fields...)
	}
}

func Instrument(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
