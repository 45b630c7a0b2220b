package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// CacheBackend identifies where cached lookups and snapshots are kept.
type CacheBackend string

// Available cache backends.
const (
	// CacheBackendSQLite persists the cache in the local data directory.
	CacheBackendSQLite CacheBackend = "sqlite"

	// CacheBackendMemory keeps the cache for the lifetime of the process.
	CacheBackendMemory CacheBackend = "memory"

	// CacheBackendRedis shares the cache through a Redis server.
	CacheBackendRedis CacheBackend = "redis"
)

// IsValid returns true if the cache backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheBackendSQLite, CacheBackendMemory, CacheBackendRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CacheBackend) Description() string {
	switch b {
	case CacheBackendSQLite:
		return "SQLite (local file)"
	case CacheBackendMemory:
		return "Memory (per process)"
	case CacheBackendRedis:
		return "Redis (shared)"
	default:
		return unknownDescription
	}
}

// SheetSettings locates the source table.
type SheetSettings struct {
	// DocumentID is the spreadsheet id.
	DocumentID string

	// SheetIndex is the zero-based index of the sheet holding the table.
	SheetIndex int

	// TableIndex is the zero-based index of the table inside the sheet.
	TableIndex int
}

// GoogleSettings holds the access credential for Google APIs.
type GoogleSettings struct {
	// APIKey authenticates requests by key.
	APIKey string

	// CredentialsFile is a service-account JSON file. Takes precedence over APIKey.
	CredentialsFile string
}

// IsConfigured returns true if any credential is set.
func (g GoogleSettings) IsConfigured() bool {
	return g.APIKey != "" || g.CredentialsFile != ""
}

// PlacesSettings configures place lookups.
type PlacesSettings struct {
	// LanguageCode is the preferred language of display names.
	LanguageCode string

	// RequestsPerSecond is the sustained lookup rate.
	RequestsPerSecond float64

	// Burst is the maximum lookup burst.
	Burst int
}

// PipelineSettings configures the row fan-out.
type PipelineSettings struct {
	// Concurrency bounds the number of rows processed at once.
	Concurrency int
}

// CacheSettings configures the cache tiers.
type CacheSettings struct {
	Backend CacheBackend

	// RedisAddr is the Redis address for the redis backend.
	RedisAddr string

	// StructuralTTL applies to table metadata and grid fetches.
	StructuralTTL time.Duration

	// GeocodeTTL applies to successful place lookups.
	GeocodeTTL time.Duration

	// SnapshotTTL applies to the serialised terminal artifact.
	SnapshotTTL time.Duration
}

// SchedulerSettings configures background dataset refresh.
type SchedulerSettings struct {
	Enabled         bool
	RefreshInterval time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	Sheet     SheetSettings
	Google    GoogleSettings
	Places    PlacesSettings
	Pipeline  PipelineSettings
	Cache     CacheSettings
	Scheduler SchedulerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Places: PlacesSettings{
			LanguageCode:      "pt-BR",
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Pipeline: PipelineSettings{
			Concurrency: 16,
		},
		Cache: CacheSettings{
			Backend:       CacheBackendSQLite,
			RedisAddr:     "localhost:6379",
			StructuralTTL: 10 * time.Second,
			GeocodeTTL:    30 * 24 * time.Hour,
			SnapshotTTL:   30 * time.Second,
		},
		Scheduler: SchedulerSettings{
			Enabled:         false,
			RefreshInterval: 15 * time.Minute,
		},
	}
}

// Validate checks that the settings are complete enough to run the pipeline.
func (s AppSettings) Validate() error {
	if s.Sheet.DocumentID == "" {
		return fmt.Errorf("%w: sheet.document_id", ErrNotConfigured)
	}
	if !s.Google.IsConfigured() {
		return fmt.Errorf("%w: google.api_key or google.credentials_file", ErrNotConfigured)
	}
	if s.Sheet.SheetIndex < 0 || s.Sheet.TableIndex < 0 {
		return fmt.Errorf("%w: sheet and table indexes must not be negative", ErrInvalidInput)
	}
	if !s.Cache.Backend.IsValid() {
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidInput, s.Cache.Backend)
	}
	if s.Pipeline.Concurrency < 1 {
		return fmt.Errorf("%w: pipeline.concurrency must be at least 1", ErrInvalidInput)
	}
	return nil
}
