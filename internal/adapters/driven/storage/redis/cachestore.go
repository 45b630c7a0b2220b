package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/logger"
)

// DefaultNamespace prefixes every key written by placemap.
const DefaultNamespace = "placemap:"

const scanBatch = 500

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore implements driven.CacheStore on a Redis server.
// Expiry is delegated to Redis key TTLs.
type CacheStore struct {
	rdb       *redis.Client
	namespace string
}

// NewCacheStore connects to addr and verifies the connection.
func NewCacheStore(ctx context.Context, addr string) (*CacheStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}

	logger.Debug("connected to redis at %s", addr)
	return NewCacheStoreFromClient(rdb, DefaultNamespace), nil
}

// NewCacheStoreFromClient wraps an existing client. Keys are stored under namespace.
func NewCacheStoreFromClient(rdb *redis.Client, namespace string) *CacheStore {
	return &CacheStore{rdb: rdb, namespace: namespace}
}

// Close closes the underlying client.
func (c *CacheStore) Close() error {
	return c.rdb.Close()
}

// Get returns the value stored at key.
func (c *CacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.rdb.Get(ctx, c.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value. A non-positive ttl stores the key without expiry.
func (c *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.rdb.Set(ctx, c.namespace+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (c *CacheStore) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.namespace+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Clear removes every key starting with prefix using SCAN, so the server is
// never blocked by a KEYS call.
func (c *CacheStore) Clear(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, escapeGlob(c.namespace+prefix)+"*", scanBatch).Iterator()

	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis clear %s: %w", prefix, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s: %w", prefix, err)
	}
	if len(batch) > 0 {
		if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis clear %s: %w", prefix, err)
		}
	}
	return nil
}

// escapeGlob quotes the characters MATCH treats as patterns.
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
