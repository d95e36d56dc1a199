package cache

import (
	"context"
	"time"
)

// NullCache discards everything. It stands in when caching is disabled
// with --no-cache, when no cache directory is available, and in tests
// that need deterministic parse paths.
type NullCache struct{}

// NewNullCache creates a cache that never hits.
func NewNullCache() Cache { return &NullCache{} }

// Get always misses.
func (*NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the record.
func (*NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (*NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (*NullCache) Close() error { return nil }

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
