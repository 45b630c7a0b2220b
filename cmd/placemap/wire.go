package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/placemap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/placemap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/placemap/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/placemap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/placemap/internal/adapters/driving/cli"
	"github.com/custodia-labs/placemap/internal/connectors/google"
	"github.com/custodia-labs/placemap/internal/connectors/google/places"
	"github.com/custodia-labs/placemap/internal/connectors/google/sheets"
	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/core/services"
	"github.com/custodia-labs/placemap/internal/logger"
)

// schedulerTick is how often the scheduler looks for due tasks.
const schedulerTick = time.Minute

// stores are the opened driven storage adapters.
type stores struct {
	cache     driven.CacheStore
	scheduler driven.SchedulerStore
	closers   []func() error
}

func (s *stores) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// bootstrap wires the adapters and services from the stored configuration.
// The dataset service is left unset when the configuration is incomplete, so
// config and cache commands still work on a fresh install.
func bootstrap(ctx context.Context, opts cli.BootstrapOptions) (*cli.Services, error) {
	dir := opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = file.DefaultDir(); err != nil {
			return nil, err
		}
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	out := &cli.Services{Settings: settingsService}
	if opts.SettingsOnly {
		return out, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	st, err := openStores(ctx, filepath.Join(dir, "data"), settings.Cache)
	if err != nil {
		return nil, err
	}
	out.Cache = st.cache
	out.Close = st.close

	if err := settings.Validate(); err != nil {
		logger.Debug("dataset unavailable: %v", err)
		return out, nil
	}

	datasets, err := newDatasetService(ctx, settings, st.cache)
	if err != nil {
		_ = st.close()
		return nil, err
	}
	out.Dataset = datasets
	out.Scheduler = services.NewScheduler(settings.Scheduler, st.scheduler, datasets, schedulerTick)
	return out, nil
}

// openStores opens the cache backend chosen in settings. Scheduler state is
// kept in SQLite unless the whole process runs in memory.
func openStores(ctx context.Context, dataDir string, cfg domain.CacheSettings) (*stores, error) {
	if cfg.Backend == domain.CacheBackendMemory {
		return &stores{
			cache:     memory.NewCacheStore(),
			scheduler: memory.NewSchedulerStore(),
		}, nil
	}

	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening data store: %w", err)
	}
	st := &stores{
		cache:     db.CacheStore(),
		scheduler: db.SchedulerStore(),
		closers:   []func() error{db.Close},
	}

	switch cfg.Backend {
	case domain.CacheBackendRedis:
		shared, err := redis.NewCacheStore(ctx, cfg.RedisAddr)
		if err != nil {
			_ = st.close()
			return nil, err
		}
		st.cache = shared
		st.closers = append(st.closers, shared.Close)
	default:
		if n, err := db.PurgeExpired(ctx); err != nil {
			logger.Warn("purging expired cache entries: %v", err)
		} else if n > 0 {
			logger.Debug("purged %d expired cache entries", n)
		}
	}
	return st, nil
}

// newDatasetService assembles the pipeline behind the dataset service.
func newDatasetService(
	ctx context.Context,
	settings *domain.AppSettings,
	cache driven.CacheStore,
) (*services.DatasetService, error) {
	sheetsSvc, err := google.NewSheetsService(ctx, settings.Google)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	placesSvc, err := google.NewPlacesService(ctx, settings.Google)
	if err != nil {
		return nil, fmt.Errorf("creating places client: %w", err)
	}

	source := sheets.NewSource(sheetsSvc, google.NewRateLimiter(google.ServiceSheets))
	lookup := places.NewLookup(placesSvc, google.NewRateLimiterWithConfig(google.RateLimitConfig{
		RequestsPerSecond: settings.Places.RequestsPerSecond,
		BurstSize:         settings.Places.Burst,
	}), settings.Places.LanguageCode)

	grid := services.NewCachedGridSource(source, cache, settings.Cache.StructuralTTL)
	enricher := services.NewPlaceEnricher(lookup, cache, settings.Cache.GeocodeTTL)
	pipeline := services.NewPipeline(grid, services.NewRowProcessor(enricher), settings.Sheet, settings.Pipeline.Concurrency)

	return services.NewDatasetService(pipeline, cache, settings.Cache.SnapshotTTL), nil
}
