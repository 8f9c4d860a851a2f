// Worker entry point: consumes attempt events from Kafka and projects them
// into the mastery store. Deployments that need the mastery table rebuilt, or
// want it maintained out of the request path, run this next to the API
// server with inline mastery recording turned off.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/askchem/askchem/internal/application/mastery"
	"github.com/askchem/askchem/internal/config"
	"github.com/askchem/askchem/internal/domain/attempt"
	"github.com/askchem/askchem/internal/infrastructure/database/postgres"
	"github.com/askchem/askchem/internal/infrastructure/database/postgres/repositories"
	"github.com/askchem/askchem/internal/infrastructure/messaging/kafka"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting askchem worker",
		logging.String("topic", cfg.Kafka.AttemptTopic),
		logging.String("group", cfg.Kafka.GroupID))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("postgres is required for the mastery projection", logging.Err(err))
	}
	defer pool.Close()

	dbURL := postgres.BuildDSN(cfg.Database)
	if err := postgres.RunMigrations(dbURL, "file://"+cfg.Database.MigrationPath); err != nil {
		logger.Error("migrations failed", logging.Err(err))
	}

	attemptRepo := repositories.NewAttemptRepository(pool.Pgx(), logger)
	masteryRepo := repositories.NewMasteryRepository(pool.Pgx(), logger)
	masterySvc := mastery.NewService(masteryRepo, attemptRepo, logger)

	consumer, err := kafka.NewConsumer(cfg.Kafka, logger)
	if err != nil {
		logger.Fatal("failed to create kafka consumer", logging.Err(err))
	}
	defer consumer.Close()

	handler := kafka.EventHandlerFunc(func(ctx context.Context, ev kafka.AttemptEvent) error {
		return masterySvc.Record(ctx, ev.StudentID, ev.TopicTags, attempt.Status(ev.Status))
	})

	done := make(chan error, 1)
	go func() {
		done <- consumer.Run(ctx, handler)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", logging.String("signal", sig.String()))
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			logger.Error("consumer stopped with error", logging.Err(err))
		}
	}

	logger.Info("askchem worker stopped")
}

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
