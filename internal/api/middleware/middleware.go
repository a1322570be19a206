// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"dashformance/leads-api/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDHeader carries the request id in and out
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key of the request id
	RequestIDKey = "request_id"
)

// RequestID reuses the caller's X-Request-ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// Logger logs one entry per request, at a level that follows the status code
func Logger(logger *logrus.Logger) gin.HandlerFunc {
	log := logger.WithField("component", "HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"ip":         c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("error", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("[HTTP] Request completed with server error")
		case status >= 400:
			entry.Warn("[HTTP] Request completed with client error")
		default:
			entry.Info("[HTTP] Request completed")
		}
	}
}

// Recovery turns panics into a 500 error envelope
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	log := logger.WithField("component", "HTTP")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestID := GetRequestID(c)
				log.WithFields(logrus.Fields{
					"request_id": requestID,
					"panic":      r,
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"stack":      string(debug.Stack()),
				}).Error("[HTTP] Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.APIError{
					RequestID: requestID,
					Error: dto.ErrorDetail{
						Type:    "UNKNOWN",
						Code:    "INTERNAL_ERROR",
						Message: "Internal Server Error",
					},
				})
			}
		}()
		c.Next()
	}
}
