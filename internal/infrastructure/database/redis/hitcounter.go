package redis

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// DefaultHitWindow is the sliding window over which hits are counted.
const DefaultHitWindow = time.Minute

// HitCounter counts events per key over a sliding time window. It backs both
// the per-client rate limiter and per-question popularity statistics, so the
// counting state is injected where it is needed instead of living in a
// package-level variable.
type HitCounter interface {
	// Hit records one event for key and returns the number of events in the
	// window including this one.
	Hit(ctx context.Context, key string) (int64, error)
	// Count returns the number of events for key currently in the window.
	Count(ctx context.Context, key string) (int64, error)
}

// redisHitCounter implements HitCounter on a sorted set per key, scored by
// event time in nanoseconds. Old members are trimmed on every access.
type redisHitCounter struct {
	client *Client
	window time.Duration
	now    func() time.Time
	seq    int64
	mu     sync.Mutex
}

// NewHitCounter returns a redis-backed HitCounter. A window of 0 uses
// DefaultHitWindow.
func NewHitCounter(client *Client, window time.Duration) HitCounter {
	if window <= 0 {
		window = DefaultHitWindow
	}
	return &redisHitCounter{
		client: client,
		window: window,
		now:    time.Now,
	}
}

func (h *redisHitCounter) key(k string) string {
	return h.client.Key("hits:" + k)
}

// member builds a unique sorted-set member for an event at ts. The sequence
// suffix disambiguates events landing on the same nanosecond.
func (h *redisHitCounter) member(ts time.Time) string {
	h.mu.Lock()
	h.seq++
	seq := h.seq
	h.mu.Unlock()
	return strconv.FormatInt(ts.UnixNano(), 10) + "-" + strconv.FormatInt(seq, 10)
}

func (h *redisHitCounter) Hit(ctx context.Context, key string) (int64, error) {
	if h.client.isClosed() {
		return 0, ErrClientClosed
	}

	ts := h.now()
	cutoff := ts.Add(-h.window)
	fullKey := h.key(key)

	pipe := h.client.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	pipe.ZAdd(ctx, fullKey, redis.Z{Score: float64(ts.UnixNano()), Member: h.member(ts)})
	card := pipe.ZCard(ctx, fullKey)
	pipe.Expire(ctx, fullKey, h.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.ErrCodeCacheError, "failed to record hit")
	}
	return card.Val(), nil
}

func (h *redisHitCounter) Count(ctx context.Context, key string) (int64, error) {
	if h.client.isClosed() {
		return 0, ErrClientClosed
	}

	cutoff := h.now().Add(-h.window)
	fullKey := h.key(key)

	pipe := h.client.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	card := pipe.ZCard(ctx, fullKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.ErrCodeCacheError, "failed to count hits")
	}
	return card.Val(), nil
}

// memoryHitCounter is a process-local HitCounter for tests and for running
// without redis.
type memoryHitCounter struct {
	window time.Duration
	now    func() time.Time
	mu     sync.Mutex
	hits   map[string][]time.Time
}

// NewMemoryHitCounter returns an in-memory HitCounter with the same
// sliding-window semantics as the redis implementation.
func NewMemoryHitCounter(window time.Duration) HitCounter {
	return newMemoryHitCounter(window, time.Now)
}

func newMemoryHitCounter(window time.Duration, now func() time.Time) *memoryHitCounter {
	if window <= 0 {
		window = DefaultHitWindow
	}
	return &memoryHitCounter{
		window: window,
		now:    now,
		hits:   make(map[string][]time.Time),
	}
}

// trim drops events older than the window. Caller holds the lock.
func (m *memoryHitCounter) trim(key string, cutoff time.Time) []time.Time {
	kept := m.hits[key][:0]
	for _, ts := range m.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(m.hits, key)
		return nil
	}
	m.hits[key] = kept
	return kept
}

func (m *memoryHitCounter) Hit(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.now()
	kept := append(m.trim(key, ts.Add(-m.window)), ts)
	m.hits[key] = kept
	return int64(len(kept)), nil
}

func (m *memoryHitCounter) Count(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.trim(key, m.now().Add(-m.window)))), nil
}
