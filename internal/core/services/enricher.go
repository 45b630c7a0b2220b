package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/logger"
)

// PlaceEnricher resolves place identities through the place lookup,
// caching successful results in the geocode tier.
type PlaceEnricher struct {
	lookup driven.PlaceLookup
	cache  driven.CacheStore
	ttl    time.Duration
}

// NewPlaceEnricher creates an enricher. The cache is optional.
func NewPlaceEnricher(lookup driven.PlaceLookup, cache driven.CacheStore, ttl time.Duration) *PlaceEnricher {
	return &PlaceEnricher{
		lookup: lookup,
		cache:  cache,
		ttl:    ttl,
	}
}

// Enrich returns the coordinates and display name of a place.
// Failures wrap domain.ErrEnrichmentFailed and are never cached, so the
// next run retries them.
func (e *PlaceEnricher) Enrich(ctx context.Context, id domain.PlaceIdentity) (*domain.LookupResult, error) {
	key := domain.CacheTierGeocode.Key(id.String())

	if res, ok := cacheGet[domain.LookupResult](ctx, e.cache, key); ok {
		return &res, nil
	}

	res, err := e.lookup.Lookup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEnrichmentFailed, err)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: empty response", domain.ErrEnrichmentFailed)
	}

	logger.Debug("Resolved %s -> %s (%.5f, %.5f)", id, res.DisplayName,
		res.Coordinates.Latitude, res.Coordinates.Longitude)
	cachePut(ctx, e.cache, key, res, e.ttl)
	return res, nil
}
