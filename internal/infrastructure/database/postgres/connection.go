// Package postgres manages the pgx connection pool and schema migrations.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askchem/askchem/internal/config"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// Pool wraps a pgx pool with lifecycle helpers.
type Pool struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewPool connects to postgres and verifies the connection with a ping.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger logging.Logger) (*Pool, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.Named("infra.postgres")

	poolCfg, err := pgxpool.ParseConfig(BuildDSN(cfg))
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to parse postgres config")
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to create connection pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "database connection failed")
	}

	logger.Info("connected to postgres",
		logging.String("host", cfg.Host),
		logging.Int("port", cfg.Port),
		logging.String("database", cfg.DBName))

	return &Pool{pool: pool, logger: logger}, nil
}

// Pgx returns the underlying pgx pool for repositories.
func (p *Pool) Pgx() *pgxpool.Pool {
	return p.pool
}

// HealthCheck pings the database and warns on high pool saturation.
func (p *Pool) HealthCheck(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "database health check failed")
	}
	stats := p.pool.Stat()
	if total := stats.TotalConns(); total > 0 {
		usage := float64(stats.AcquiredConns()) / float64(total)
		if usage > 0.8 {
			p.logger.Warn("high connection pool usage",
				logging.Int("acquired", int(stats.AcquiredConns())),
				logging.Int("total", int(total)),
				logging.Float64("usage", usage))
		}
	}
	return nil
}

// Close releases the pool. Safe to call more than once.
func (p *Pool) Close() {
	p.pool.Close()
	p.logger.Info("postgres pool closed")
}

// BuildDSN constructs a postgres connection URL from cfg.
func BuildDSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}
	q := u.Query()
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()
	return u.String()
}
