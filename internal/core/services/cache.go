package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/logger"
)

// cacheGet decodes a cached JSON value. A nil cache, a miss, a read failure
// and a corrupt entry all report false; only the last two are logged.
func cacheGet[T any](ctx context.Context, cache driven.CacheStore, key string) (T, bool) {
	var v T
	if cache == nil {
		return v, false
	}

	data, err := cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Warn("cache read %s: %v", key, err)
		}
		return v, false
	}

	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn("cache decode %s: %v", key, err)
		return v, false
	}
	return v, true
}

// cachePut encodes and stores a value. Failures are logged, never returned:
// the cache is an optimisation, not a source of truth.
func cachePut(ctx context.Context, cache driven.CacheStore, key string, v any, ttl time.Duration) {
	if cache == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache encode %s: %v", key, err)
		return
	}
	if err := cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write %s: %v", key, err)
	}
}

// Ensure CachedGridSource implements the interface.
var _ driven.GridSource = (*CachedGridSource)(nil)

// CachedGridSource caches table metadata and grid fetches in the structural
// tier. Lookups that fail are not cached.
type CachedGridSource struct {
	source driven.GridSource
	cache  driven.CacheStore
	ttl    time.Duration
}

// NewCachedGridSource wraps a grid source with the structural cache tier.
// A nil cache disables caching.
func NewCachedGridSource(source driven.GridSource, cache driven.CacheStore, ttl time.Duration) *CachedGridSource {
	return &CachedGridSource{
		source: source,
		cache:  cache,
		ttl:    ttl,
	}
}

// Table returns the table location, from cache when fresh.
func (c *CachedGridSource) Table(
	ctx context.Context, documentID string, sheetIndex, tableIndex int,
) (*domain.TableLocation, error) {
	key := domain.CacheTierStructural.Key("table", documentID,
		fmt.Sprint(sheetIndex), fmt.Sprint(tableIndex))

	if table, ok := cacheGet[domain.TableLocation](ctx, c.cache, key); ok {
		logger.Debug("Table %s served from cache", key)
		return &table, nil
	}

	table, err := c.source.Table(ctx, documentID, sheetIndex, tableIndex)
	if err != nil {
		return nil, err
	}
	cachePut(ctx, c.cache, key, table, c.ttl)
	return table, nil
}

// Rows returns the table's data rows, from cache when fresh.
func (c *CachedGridSource) Rows(
	ctx context.Context, documentID string, table domain.TableLocation,
) ([]domain.RawRow, error) {
	key := domain.CacheTierStructural.Key("rows", documentID, table.Range())

	if rows, ok := cacheGet[[]domain.RawRow](ctx, c.cache, key); ok {
		logger.Debug("Rows %s served from cache", key)
		return rows, nil
	}

	rows, err := c.source.Rows(ctx, documentID, table)
	if err != nil {
		return nil, err
	}
	cachePut(ctx, c.cache, key, rows, c.ttl)
	return rows, nil
}
