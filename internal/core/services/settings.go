package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDocumentID       = "sheet.document_id"
	keySheetIndex       = "sheet.sheet_index"
	keyTableIndex       = "sheet.table_index"
	keyAPIKey           = "google.api_key"
	keyCredentialsFile  = "google.credentials_file"
	keyLanguageCode     = "places.language_code"
	keyRequestsPerSec   = "places.requests_per_second"
	keyBurst            = "places.burst"
	keyConcurrency      = "pipeline.concurrency"
	keyCacheBackend     = "cache.backend"
	keyRedisAddr        = "cache.redis_addr"
	keyStructuralTTL    = "cache.structural_ttl"
	keyGeocodeTTL       = "cache.geocode_ttl"
	keySnapshotTTL      = "cache.snapshot_ttl"
	keySchedulerEnabled = "scheduler.enabled"
	keyRefreshInterval  = "scheduler.refresh_interval"
)

// EnvAPIKey overrides google.api_key when set.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvAPIKey = "PLACEMAP_GOOGLE_API_KEY"

// valueKind is how a setting's string form is parsed and stored.
type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindBackend
)

var settingKinds = map[string]valueKind{
	keyDocumentID:       kindString,
	keySheetIndex:       kindInt,
	keyTableIndex:       kindInt,
	keyAPIKey:           kindString,
	keyCredentialsFile:  kindString,
	keyLanguageCode:     kindString,
	keyRequestsPerSec:   kindFloat,
	keyBurst:            kindInt,
	keyConcurrency:      kindInt,
	keyCacheBackend:     kindBackend,
	keyRedisAddr:        kindString,
	keyStructuralTTL:    kindDuration,
	keyGeocodeTTL:       kindDuration,
	keySnapshotTTL:      kindDuration,
	keySchedulerEnabled: kindBool,
	keyRefreshInterval:  kindDuration,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Sheet: domain.SheetSettings{
			DocumentID: s.configStore.GetString(keyDocumentID),
			SheetIndex: s.getInt(keySheetIndex, d.Sheet.SheetIndex),
			TableIndex: s.getInt(keyTableIndex, d.Sheet.TableIndex),
		},
		Google: domain.GoogleSettings{
			APIKey:          s.configStore.GetString(keyAPIKey),
			CredentialsFile: s.configStore.GetString(keyCredentialsFile),
		},
		Places: domain.PlacesSettings{
			LanguageCode:      s.getString(keyLanguageCode, d.Places.LanguageCode),
			RequestsPerSecond: s.getFloat(keyRequestsPerSec, d.Places.RequestsPerSecond),
			Burst:             s.getInt(keyBurst, d.Places.Burst),
		},
		Pipeline: domain.PipelineSettings{
			Concurrency: s.getInt(keyConcurrency, d.Pipeline.Concurrency),
		},
		Cache: domain.CacheSettings{
			Backend:       s.getBackend(d.Cache.Backend),
			RedisAddr:     s.getString(keyRedisAddr, d.Cache.RedisAddr),
			StructuralTTL: s.getDuration(keyStructuralTTL, d.Cache.StructuralTTL),
			GeocodeTTL:    s.getDuration(keyGeocodeTTL, d.Cache.GeocodeTTL),
			SnapshotTTL:   s.getDuration(keySnapshotTTL, d.Cache.SnapshotTTL),
		},
		Scheduler: domain.SchedulerSettings{
			Enabled:         s.getBool(keySchedulerEnabled, d.Scheduler.Enabled),
			RefreshInterval: s.getDuration(keyRefreshInterval, d.Scheduler.RefreshInterval),
		},
	}

	if key := s.getenv(EnvAPIKey); key != "" {
		settings.Google.APIKey = key
	}

	return settings, nil
}

// Save persists application settings.
// The API key is only written when set, so an environment override is never persisted by accident.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key string
		val any
	}{
		{keyDocumentID, settings.Sheet.DocumentID},
		{keySheetIndex, settings.Sheet.SheetIndex},
		{keyTableIndex, settings.Sheet.TableIndex},
		{keyCredentialsFile, settings.Google.CredentialsFile},
		{keyLanguageCode, settings.Places.LanguageCode},
		{keyRequestsPerSec, settings.Places.RequestsPerSecond},
		{keyBurst, settings.Places.Burst},
		{keyConcurrency, settings.Pipeline.Concurrency},
		{keyCacheBackend, settings.Cache.Backend.String()},
		{keyRedisAddr, settings.Cache.RedisAddr},
		{keyStructuralTTL, settings.Cache.StructuralTTL.String()},
		{keyGeocodeTTL, settings.Cache.GeocodeTTL.String()},
		{keySnapshotTTL, settings.Cache.SnapshotTTL.String()},
		{keySchedulerEnabled, settings.Scheduler.Enabled},
		{keyRefreshInterval, settings.Scheduler.RefreshInterval.String()},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Google.APIKey != "" && settings.Google.APIKey != s.getenv(EnvAPIKey) {
		if err := s.configStore.Set(keyAPIKey, settings.Google.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyAPIKey, err)
		}
	}

	return nil
}

// Set parses and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	return s.configStore.Set(key, parsed)
}

// Keys returns every supported setting key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the effective value of every setting as a string, keyed like Set.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		keyDocumentID:       settings.Sheet.DocumentID,
		keySheetIndex:       strconv.Itoa(settings.Sheet.SheetIndex),
		keyTableIndex:       strconv.Itoa(settings.Sheet.TableIndex),
		keyAPIKey:           settings.Google.APIKey,
		keyCredentialsFile:  settings.Google.CredentialsFile,
		keyLanguageCode:     settings.Places.LanguageCode,
		keyRequestsPerSec:   strconv.FormatFloat(settings.Places.RequestsPerSecond, 'f', -1, 64),
		keyBurst:            strconv.Itoa(settings.Places.Burst),
		keyConcurrency:      strconv.Itoa(settings.Pipeline.Concurrency),
		keyCacheBackend:     settings.Cache.Backend.String(),
		keyRedisAddr:        settings.Cache.RedisAddr,
		keyStructuralTTL:    settings.Cache.StructuralTTL.String(),
		keyGeocodeTTL:       settings.Cache.GeocodeTTL.String(),
		keySnapshotTTL:      settings.Cache.SnapshotTTL.String(),
		keySchedulerEnabled: strconv.FormatBool(settings.Scheduler.Enabled),
		keyRefreshInterval:  settings.Scheduler.RefreshInterval.String(),
	}, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(kind valueKind, value string) (any, error) {
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", value)
		}
		if n < 0 {
			return nil, fmt.Errorf("must not be negative: %d", n)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("not a positive number: %q", value)
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("not a boolean: %q", value)
		}
		return b, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("not a duration: %q", value)
		}
		return d.String(), nil
	case kindBackend:
		if !domain.CacheBackend(value).IsValid() {
			return nil, fmt.Errorf("unknown cache backend: %q", value)
		}
		return value, nil
	default:
		return value, nil
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	// TOML numbers without a fraction are parsed as int64
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	str := s.configStore.GetString(key)
	if str == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getBackend(defaultVal domain.CacheBackend) domain.CacheBackend {
	backend := domain.CacheBackend(s.configStore.GetString(keyCacheBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
