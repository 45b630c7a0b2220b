package driven

import (
	"context"
	"time"
)

// CacheStore is a byte-oriented key-value cache with per-entry expiry.
// Implementations must be safe for concurrent use.
type CacheStore interface {
	// Get returns the cached value.
	// Returns domain.ErrCacheMiss if the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A ttl of zero or less stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key with the given prefix. An empty prefix clears everything.
	Clear(ctx context.Context, prefix string) error
}
