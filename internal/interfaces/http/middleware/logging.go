// Package middleware holds the gin middleware chain: request logging,
// panic recovery, and redis-backed rate limiting.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/prometheus"
)

// RequestIDHeader carries the request id to the client; incoming values are
// trusted so callers can correlate retries.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a uuid unless the client sent one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// RequestLogging logs one line per request and feeds the HTTP metrics.
func RequestLogging(logger logging.Logger, metrics *prometheus.AppMetrics) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		if metrics != nil {
			metrics.HTTPInFlight.WithLabelValues().Inc()
		}

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()

		if metrics != nil {
			metrics.HTTPInFlight.WithLabelValues().Dec()
			metrics.RecordHTTPRequest(c.Request.Method, path, status, elapsed.Seconds())
		}

		fields := []logging.Field{
			logging.String("request_id", GetRequestID(c)),
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Duration("elapsed", elapsed),
			logging.String("client_ip", c.ClientIP()),
		}
		if status >= 500 {
			logger.Error("request failed", fields...)
		} else {
			logger.Info("request served", fields...)
		}
	}
}
