package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/core/ports/driving"
	"github.com/custodia-labs/placemap/internal/logger"
)

// Ensure DatasetService implements the interface.
var _ driving.DatasetService = (*DatasetService)(nil)

// DatasetService serves the terminal artifact from a short-lived snapshot,
// rebuilding it through the pipeline on a miss or when forced.
type DatasetService struct {
	pipeline driving.Pipeline
	cache    driven.CacheStore
	ttl      time.Duration

	// mu serialises rebuilds so concurrent callers share one pipeline run.
	mu sync.Mutex
}

// NewDatasetService creates a dataset service. The cache is optional.
func NewDatasetService(pipeline driving.Pipeline, cache driven.CacheStore, ttl time.Duration) *DatasetService {
	return &DatasetService{
		pipeline: pipeline,
		cache:    cache,
		ttl:      ttl,
	}
}

// Get returns the dataset. Unless force is set a fresh snapshot is served
// from cache. A failing cache degrades to running the pipeline.
func (s *DatasetService) Get(ctx context.Context, force bool) (*domain.Dataset, error) {
	if s.pipeline == nil {
		return nil, errors.New("pipeline not configured")
	}

	if !force {
		if ds, ok := cacheGet[domain.Dataset](ctx, s.cache, domain.SnapshotKey); ok {
			logger.Debug("Dataset %s served from snapshot", ds.RunID)
			return &ds, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have rebuilt while we waited.
	if !force {
		if ds, ok := cacheGet[domain.Dataset](ctx, s.cache, domain.SnapshotKey); ok {
			return &ds, nil
		}
	}

	ds, err := s.pipeline.Run(ctx)
	if err != nil {
		return nil, err
	}
	cachePut(ctx, s.cache, domain.SnapshotKey, ds, s.ttl)
	return ds, nil
}

// Query returns the places matching the filter, in dataset order.
func (s *DatasetService) Query(ctx context.Context, filter domain.PlaceFilter, force bool) ([]domain.Place, error) {
	ds, err := s.Get(ctx, force)
	if err != nil {
		return nil, err
	}
	return ds.Filter(filter), nil
}

// Invalidate drops the given cache tiers, or every tier when none is given.
func (s *DatasetService) Invalidate(ctx context.Context, tiers ...domain.CacheTier) error {
	if s.cache == nil {
		return nil
	}
	if len(tiers) == 0 {
		tiers = domain.AllCacheTiers
	}

	for _, tier := range tiers {
		if !tier.IsValid() {
			return fmt.Errorf("%w: unknown cache tier %q", domain.ErrInvalidInput, tier)
		}
		if err := s.cache.Clear(ctx, tier.Prefix()); err != nil {
			return fmt.Errorf("clear %s cache: %w", tier, err)
		}
		logger.Debug("Cleared %s cache", tier)
	}
	return nil
}
