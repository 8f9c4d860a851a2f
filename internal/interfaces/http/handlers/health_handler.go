package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
)

// Pinger is one readiness dependency; redis and postgres both satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a bare function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// NamedPinger labels a dependency in the readiness report.
type NamedPinger struct {
	Name   string
	Pinger Pinger
}

// HealthHandler serves liveness and readiness.
type HealthHandler struct {
	deps    []NamedPinger
	timeout time.Duration
	logger  logging.Logger
}

func NewHealthHandler(logger logging.Logger, deps ...NamedPinger) *HealthHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &HealthHandler{
		deps:    deps,
		timeout: 2 * time.Second,
		logger:  logger.Named("http.health"),
	}
}

// Liveness always reports ok while the process can serve requests.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness pings every registered dependency. One failure makes the whole
// endpoint 503 so load balancers stop routing here.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	ready := true
	for _, dep := range h.deps {
		if err := dep.Pinger.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				logging.String("dependency", dep.Name), logging.Err(err))
			checks[dep.Name] = "unavailable"
			ready = false
			continue
		}
		checks[dep.Name] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
