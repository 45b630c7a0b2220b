package driving

import "github.com/custodia-labs/placemap/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by key, validating the value.
	Set(key, value string) error

	// Values returns the effective value of every setting as a string.
	Values() (map[string]string, error)

	// Keys returns every supported setting key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
