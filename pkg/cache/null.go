package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. The pipeline runs against it when caching is
// disabled, so every kernel matrix and rendering is recomputed.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

// Clear validates keyType and reports that nothing was removed.
func (c *NullCache) Clear(_ context.Context, keyType string) (int, error) {
	return 0, checkKeyType(keyType)
}

func (c *NullCache) Close() error { return nil }

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
