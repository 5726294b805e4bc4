// Package events provides middleware for request event logging
package events

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/hotelops-dashboard/internal/logger"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// CreateEvent returns a middleware function that logs request details
func CreateEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.HTTP()
		startTime := time.Now()

		requestID := generateRequestID()
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		log.Debug("Request started",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_addr", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		logLevel := log.Info
		if status >= 500 {
			logLevel = log.Error
		} else if status >= 400 {
			logLevel = log.Warn
		}

		logLevel("Request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"size", c.Writer.Size(),
		)
	}
}

// generateRequestID creates a request ID for tracing
func generateRequestID() string {
	return "req_" + uuid.NewString()
}
