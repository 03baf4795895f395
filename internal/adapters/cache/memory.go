package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"eventhub/internal/domain"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache returns a process-local domain.ResultCache. Expired entries
// are never returned and are purged every cleanupInterval.
func NewMemoryCache(cleanupInterval time.Duration) domain.ResultCache {
	return &memoryCache{store: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return clone(b), true, nil
}

// Set stores a copy of value; entries are never shared with callers.
func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, clone(value), ttl)
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
