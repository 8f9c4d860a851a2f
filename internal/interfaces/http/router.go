// Package http assembles the gin router and the server lifecycle around it.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/prometheus"
	"github.com/askchem/askchem/internal/interfaces/http/handlers"
	"github.com/askchem/askchem/internal/interfaces/http/middleware"
)

// RouterConfig aggregates everything the router mounts. Nil handlers skip
// their routes; a nil rate limiter passes everything through.
type RouterConfig struct {
	Question *handlers.QuestionHandler
	Mastery  *handlers.MasteryHandler
	Catalog  *handlers.CatalogHandler
	Health   *handlers.HealthHandler

	Logger         logging.Logger
	Metrics        *prometheus.AppMetrics
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter

	// Mode is the gin mode: "debug", "release", or "test".
	Mode string
}

// NewRouter builds the engine with the full middleware chain and route table.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	gin.SetMode(cfg.Mode)

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.RequestLogging(logger, cfg.Metrics),
	)

	if cfg.Health != nil {
		engine.GET("/healthz", cfg.Health.Liveness)
		engine.GET("/readyz", cfg.Health.Readiness)
	}
	if cfg.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := engine.Group("/api/v1")
	api.Use(cfg.RateLimiter.Handler())

	if cfg.Question != nil {
		api.POST("/questions/ask", cfg.Question.Ask)
		api.POST("/questions/export", cfg.Question.Export)
	}
	if cfg.Mastery != nil {
		api.GET("/students/:id/progress", cfg.Mastery.Progress)
		api.GET("/students/:id/attempts", cfg.Mastery.Attempts)
	}
	if cfg.Catalog != nil {
		api.GET("/solvers", cfg.Catalog.Solvers)
	}

	return engine
}
