package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askchem/askchem/internal/config"
	"github.com/askchem/askchem/internal/infrastructure/database/redis"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/prometheus"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// RateLimiter throttles by client IP over a sliding window backed by a
// HitCounter. The counter fails open: if redis is down, requests pass.
type RateLimiter struct {
	hits    redis.HitCounter
	limit   int
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// NewRateLimiter builds a limiter from config. Returns nil when disabled or
// when no counter is available; a nil limiter produces a pass-through handler.
func NewRateLimiter(cfg config.RateLimitConfig, hits redis.HitCounter, logger logging.Logger, metrics *prometheus.AppMetrics) *RateLimiter {
	if !cfg.Enabled || hits == nil {
		return nil
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RateLimiter{
		hits:    hits,
		limit:   cfg.RequestsPerWindow,
		logger:  logger.Named("http.ratelimit"),
		metrics: metrics,
	}
}

// Handler returns the gin middleware for this limiter.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		n, err := rl.hits.Hit(c.Request.Context(), "ip:"+c.ClientIP())
		if err != nil {
			rl.logger.Warn("rate limit counter unavailable, allowing request", logging.Err(err))
			c.Next()
			return
		}
		if n > int64(rl.limit) {
			if rl.metrics != nil {
				rl.metrics.RateLimitedTotal.WithLabelValues().Inc()
			}
			appErr := pkgerrors.RateLimit("too many requests, slow down")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    appErr.Code.String(),
					"message": appErr.Message,
				},
			})
			return
		}
		c.Next()
	}
}
