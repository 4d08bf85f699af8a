package driving

import "github.com/custodia-labs/cloudtiles/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults.
	Get() (*domain.CatalogSettings, error)

	// Save persists settings.
	Save(settings *domain.CatalogSettings) error

	// Set stores a single setting by key after validating it.
	Set(key, value string) error

	// Keys returns the settable keys in display order.
	Keys() []string
}
