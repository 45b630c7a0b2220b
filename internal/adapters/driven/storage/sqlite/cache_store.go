package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
)

var timeNow = time.Now

// cacheStore implements driven.CacheStore.
// Expiry is stored as unix nanoseconds; 0 means the entry never expires.
type cacheStore struct {
	store *Store
	now   func() time.Time
}

var _ driven.CacheStore = (*cacheStore)(nil)

// Get returns the value of a live entry. Expired entries are removed lazily.
func (c *cacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt int64
	err := c.store.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM cache_entries WHERE key = ?", key).
		Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	if expiresAt != 0 && expiresAt <= c.now().UnixNano() {
		if _, err := c.store.db.ExecContext(ctx,
			"DELETE FROM cache_entries WHERE key = ? AND expires_at = ?", key, expiresAt); err != nil {
			return nil, fmt.Errorf("evicting cache entry: %w", err)
		}
		return nil, domain.ErrCacheMiss
	}
	return value, nil
}

// Set stores a value. A non-positive ttl keeps it until deleted.
func (c *cacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixNano()
	}

	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, key, value, expiresAt, now.UnixNano())
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Delete removes an entry. Deleting a missing key is not an error.
func (c *cacheStore) Delete(ctx context.Context, key string) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry whose key starts with prefix.
func (c *cacheStore) Clear(ctx context.Context, prefix string) error {
	// substr avoids LIKE wildcard escaping in keys.
	_, err := c.store.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE substr(key, 1, ?) = ?", utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return fmt.Errorf("clearing cache entries: %w", err)
	}
	return nil
}

// PurgeExpired removes every expired entry and returns how many were removed.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE expires_at != 0 AND expires_at <= ?", timeNow().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purging cache entries: %w", err)
	}
	return res.RowsAffected()
}
