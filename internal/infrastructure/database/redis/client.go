// Package redis provides the shared redis client, the answer cache, and the
// sliding-window hit counter backing rate limiting and question statistics.
package redis

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/askchem/askchem/internal/config"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

var (
	ErrClientClosed     = pkgerrors.New(pkgerrors.ErrCodeInternal, "redis client is closed")
	ErrConnectionFailed = pkgerrors.New(pkgerrors.ErrCodeCacheError, "redis connection failed")
)

// Client wraps a standalone go-redis client with key prefixing and a closed
// flag, so callers get a clear error instead of a hung command after Close.
type Client struct {
	rdb    *redis.Client
	prefix string
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewClient connects to redis with the given settings and verifies the
// connection with a ping before returning.
func NewClient(cfg config.RedisConfig, logger logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	if cfg.PoolSize == 0 {
		cfg.PoolSize = 10 * runtime.GOMAXPROCS(0)
	}
	if cfg.MinIdleConns == 0 {
		cfg.MinIdleConns = 5
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	client := &Client{
		rdb:    rdb,
		prefix: cfg.KeyPrefix,
		logger: logger.Named("infra.redis"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		rdb.Close()
		return nil, ErrConnectionFailed.WithCause(err)
	}

	client.logger.Info("redis client connected", logging.String("addr", cfg.Addr))
	return client, nil
}

// newClientFromRdb wires an existing go-redis client; used by tests with
// redismock.
func newClientFromRdb(rdb *redis.Client, prefix string, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{rdb: rdb, prefix: prefix, logger: logger}
}

// Key returns the full prefixed key for k.
func (c *Client) Key(k string) string {
	return c.prefix + k
}

func (c *Client) Ping(ctx context.Context) error {
	if c.isClosed() {
		return ErrClientClosed
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.rdb.Close()
	if err != nil {
		c.logger.Error("failed to close redis client", logging.Err(err))
		return err
	}
	c.logger.Info("redis client closed")
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Underlying exposes the raw go-redis client for command access.
func (c *Client) Underlying() *redis.Client {
	return c.rdb
}
