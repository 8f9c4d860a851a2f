// API server entry point for askchem.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/askchem/askchem/internal/application/export"
	"github.com/askchem/askchem/internal/application/mastery"
	"github.com/askchem/askchem/internal/application/tutor"
	"github.com/askchem/askchem/internal/config"
	"github.com/askchem/askchem/internal/dispatch"
	"github.com/askchem/askchem/internal/domain/question"
	"github.com/askchem/askchem/internal/infrastructure/database/postgres"
	"github.com/askchem/askchem/internal/infrastructure/database/postgres/repositories"
	"github.com/askchem/askchem/internal/infrastructure/database/redis"
	"github.com/askchem/askchem/internal/infrastructure/messaging/kafka"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/askchem/askchem/internal/interfaces/http"
	"github.com/askchem/askchem/internal/interfaces/http/handlers"
	"github.com/askchem/askchem/internal/interfaces/http/middleware"
	"github.com/askchem/askchem/internal/solver"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting askchem api server",
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Server.Mode))

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "askchem",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to build metrics collector", logging.Err(err))
	}
	metrics := prometheus.NewAppMetrics(collector)

	ctx := context.Background()

	// Redis is an optional dependency: the hit counter and rate limiter are
	// disabled without it and the engine still answers questions.
	var redisClient *redis.Client
	var hits redis.HitCounter
	if rc, err := redis.NewClient(cfg.Redis, logger); err != nil {
		logger.Warn("redis unavailable, hit counting and rate limiting disabled", logging.Err(err))
	} else {
		redisClient = rc
		hits = redis.NewHitCounter(rc, cfg.RateLimit.Window)
	}

	// Postgres is likewise optional; without it attempts and mastery are not
	// persisted but answers still flow.
	var pool *postgres.Pool
	var attemptRepo *repositories.AttemptRepository
	var masteryRepo *repositories.MasteryRepository
	if p, err := postgres.NewPool(ctx, cfg.Database, logger); err != nil {
		logger.Warn("postgres unavailable, attempt persistence disabled", logging.Err(err))
	} else {
		pool = p
		dbURL := postgres.BuildDSN(cfg.Database)
		if err := postgres.RunMigrations(dbURL, "file://"+cfg.Database.MigrationPath); err != nil {
			logger.Error("migrations failed", logging.Err(err))
		}
		attemptRepo = repositories.NewAttemptRepository(pool.Pgx(), logger)
		masteryRepo = repositories.NewMasteryRepository(pool.Pgx(), logger)
	}

	publisher := kafka.NewPublisher(cfg.Kafka, logger, metrics)

	pipeline := dispatch.NewPipeline(
		question.NewGate(cfg.Engine.MaxQuestionLen),
		solver.NewGuard(),
		solver.NewRegistry().Ordered(),
		logger,
		prometheus.NewDispatchMetrics(metrics),
	)

	opts := tutor.Options{
		Publisher:      publisher,
		Hits:           hits,
		Metrics:        metrics,
		DefaultMode:    cfg.Engine.DefaultMode,
		DefaultSubject: cfg.Engine.DefaultSubject,
	}
	var masterySvc *mastery.Service
	if attemptRepo != nil {
		opts.Attempts = attemptRepo
		masterySvc = mastery.NewService(masteryRepo, attemptRepo, logger)
		opts.Mastery = masterySvc
	}
	tutorSvc := tutor.NewService(pipeline, logger, opts)

	var healthDeps []handlers.NamedPinger
	if redisClient != nil {
		healthDeps = append(healthDeps, handlers.NamedPinger{Name: "redis", Pinger: redisClient})
	}
	if pool != nil {
		healthDeps = append(healthDeps, handlers.NamedPinger{Name: "postgres", Pinger: handlers.PingerFunc(pool.HealthCheck)})
	}

	routerCfg := httpserver.RouterConfig{
		Question:       handlers.NewQuestionHandler(tutorSvc, export.NewBuilder(cfg.Engine.ExportLanguage), cfg.Engine.MaxQuestionLen, logger),
		Catalog:        handlers.NewCatalogHandler(solver.NewRegistry()),
		Health:         handlers.NewHealthHandler(logger, healthDeps...),
		Logger:         logger,
		Metrics:        metrics,
		MetricsHandler: collector.Handler(),
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit, hits, logger, metrics),
		Mode:           ginMode(cfg.Server.Mode),
	}
	if masterySvc != nil {
		routerCfg.Mastery = handlers.NewMasteryHandler(masterySvc, attemptRepo)
	}

	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerCfg), logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http server error", logging.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("http server shutdown error", logging.Err(err))
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka publisher close error", logging.Err(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("redis close error", logging.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}

	logger.Info("askchem api server stopped")
}

// loadConfig reads the file when present, otherwise falls back to the
// environment so the container path needs no config file at all.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

func newLogger(cfg config.LogConfig) (logging.Logger, error) {
	format := cfg.Format
	if format == "text" {
		format = "console"
	}
	return logging.NewLogger(logging.Config{
		Level:       cfg.Level,
		Format:      format,
		OutputPaths: []string{cfg.Output},
	})
}

// ginMode maps the server mode onto gin's. Unknown values run in release
// mode, the safe production default.
func ginMode(mode string) string {
	switch mode {
	case "debug", "release", "test":
		return mode
	}
	return "release"
}
