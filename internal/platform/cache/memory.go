package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var _ Cache = (*Memory)(nil)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory is an in-process Cache guarded by a single RWMutex.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	metrics cacheMetrics
}

type Option func(*Memory)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMeter records hit, miss, and invalidation counters.
func WithMeter(meter metric.Meter) Option {
	return func(m *Memory) {
		m.metrics = newCacheMetrics(meter)
	}
}

func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries: map[string]entry{},
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *Memory) Get(ctx context.Context, key string) (any, bool) {
	now := m.now()
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if ok && !e.expired(now) {
		m.metrics.recordHit(ctx, key)
		return e.value, true
	}
	if ok {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if current, still := m.entries[key]; still && current.expired(now) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
	}
	m.metrics.recordMiss(ctx, key)
	return nil, false
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
}

func (m *Memory) Invalidate(ctx context.Context, key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	m.metrics.recordInvalidation(ctx, 1)
}

func (m *Memory) InvalidatePrefix(ctx context.Context, prefix string) {
	m.mu.Lock()
	removed := 0
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
			removed++
		}
	}
	m.mu.Unlock()
	m.metrics.recordInvalidation(ctx, removed)
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// PurgeExpired evicts every expired entry and returns how many were removed.
func (m *Memory) PurgeExpired(_ context.Context) int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps expired entries every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.PurgeExpired(ctx)
		}
	}
}

type cacheMetrics struct {
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	invalidations metric.Int64Counter
}

func newCacheMetrics(m metric.Meter) cacheMetrics {
	if m == nil {
		return cacheMetrics{}
	}
	hits, _ := m.Int64Counter("cache.hits", metric.WithDescription("Number of cache hits"))
	misses, _ := m.Int64Counter("cache.misses", metric.WithDescription("Number of cache misses"))
	invalidations, _ := m.Int64Counter("cache.invalidations", metric.WithDescription("Number of cache entries invalidated"))
	return cacheMetrics{hits: hits, misses: misses, invalidations: invalidations}
}

func (c cacheMetrics) recordHit(ctx context.Context, key string) {
	if c.hits != nil {
		c.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.namespace", namespace(key))))
	}
}

func (c cacheMetrics) recordMiss(ctx context.Context, key string) {
	if c.misses != nil {
		c.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.namespace", namespace(key))))
	}
}

func (c cacheMetrics) recordInvalidation(ctx context.Context, n int) {
	if c.invalidations != nil && n > 0 {
		c.invalidations.Add(ctx, int64(n))
	}
}

func namespace(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
