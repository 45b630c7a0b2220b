package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// CacheStore is an in-memory implementation of driven.CacheStore.
type CacheStore struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCacheStore creates a new in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns a copy of a live entry's value.
func (c *CacheStore) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if entry.expired(c.now()) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current.expired(c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, domain.ErrCacheMiss
	}
	return append([]byte(nil), entry.value...), nil
}

// Set stores a copy of value. A non-positive ttl keeps it until deleted.
func (c *CacheStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := cacheEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	return nil
}

// Delete removes an entry.
func (c *CacheStore) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Clear removes every entry whose key starts with prefix.
func (c *CacheStore) Clear(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *CacheStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
