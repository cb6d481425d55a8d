// Package cache provides the process-wide key-value layer that sits in front
// of repository reads. Entries carry an absolute expiry and are removed either
// when they expire or when a write invalidates them.
package cache

import (
	"context"
	"time"
)

// Cache is the contract both application services depend on. Misses are
// never errors; a backend failure behaves like a miss.
type Cache interface {
	// Get returns the live value stored under key.
	Get(ctx context.Context, key string) (any, bool)
	// Set stores value until now+ttl. A non-positive ttl never expires.
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	// Invalidate drops key regardless of its remaining ttl.
	Invalidate(ctx context.Context, key string)
	// InvalidatePrefix drops every key that starts with prefix.
	InvalidatePrefix(ctx context.Context, prefix string)
}

// GetOrLoad is the read-through path: a typed hit is returned as is, anything
// else calls load and stores its result. Load errors are returned without
// touching the cache.
func GetOrLoad[V any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (V, error)) (V, bool, error) {
	if c != nil {
		if raw, ok := c.Get(ctx, key); ok {
			if value, ok := raw.(V); ok {
				return value, true, nil
			}
		}
	}
	value, err := load(ctx)
	if err != nil {
		var zero V
		return zero, false, err
	}
	if c != nil {
		c.Set(ctx, key, value, ttl)
	}
	return value, false, nil
}
