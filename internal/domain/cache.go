package domain

import (
	"context"
	"time"
)

// ResultCache is a time-bounded key/value store for serialized result snapshots.
// Entries are never invalidated explicitly; they expire after the ttl given to Set.
type ResultCache interface {
	// Get returns the stored value and true, or false when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, replacing any existing entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
