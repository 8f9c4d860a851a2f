package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/askchem/askchem/internal/application/export"
	"github.com/askchem/askchem/internal/application/tutor"
	"github.com/askchem/askchem/internal/config"
	"github.com/askchem/askchem/internal/dispatch"
	"github.com/askchem/askchem/internal/domain/question"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/askchem/askchem/internal/interfaces/http"
	"github.com/askchem/askchem/internal/interfaces/http/handlers"
	"github.com/askchem/askchem/internal/solver"
)

// newServeCmd runs the HTTP API with the in-process engine only: no redis, no
// postgres, no kafka. The full deployment path is cmd/apiserver; this is for
// trying the API locally.
func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API with the in-process engine (no external services)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}

			logger, err := logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: "console"})
			if err != nil {
				return err
			}

			collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "askchem"}, logger)
			if err != nil {
				return err
			}
			metrics := prometheus.NewAppMetrics(collector)

			pipeline := dispatch.NewPipeline(
				question.NewGate(cfg.Engine.MaxQuestionLen),
				solver.NewGuard(),
				solver.NewRegistry().Ordered(),
				logger,
				prometheus.NewDispatchMetrics(metrics),
			)
			tutorSvc := tutor.NewService(pipeline, logger, tutor.Options{
				Metrics:        metrics,
				DefaultMode:    cfg.Engine.DefaultMode,
				DefaultSubject: cfg.Engine.DefaultSubject,
			})

			router := httpserver.NewRouter(httpserver.RouterConfig{
				Question:       handlers.NewQuestionHandler(tutorSvc, export.NewBuilder(cfg.Engine.ExportLanguage), cfg.Engine.MaxQuestionLen, logger),
				Catalog:        handlers.NewCatalogHandler(solver.NewRegistry()),
				Health:         handlers.NewHealthHandler(logger),
				Logger:         logger,
				Metrics:        metrics,
				MetricsHandler: collector.Handler(),
				Mode:           "release",
			})
			srv := httpserver.NewServer(cfg.Server, router, logger)

			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("http server error", logging.Err(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			return srv.Stop(context.Background())
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to configuration file (default: environment only)")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (overrides config)")
	return cmd
}

func loadServeConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
