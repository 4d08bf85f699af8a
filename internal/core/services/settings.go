package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyProviderKey   = "provider.key"
	KeyProviderName  = "provider.name"
	KeyDatasetPath   = "dataset.path"
	KeyGroupsPath    = "groups.path"
	KeyHTTPTimeout   = "http.timeout"
	KeyHTTPRateLimit = "http.requests_per_second"
	KeyWatch         = "dataset.watch"
)

// settingKeys lists the settable keys in display order.
var settingKeys = []string{
	KeyProviderKey,
	KeyProviderName,
	KeyDatasetPath,
	KeyGroupsPath,
	KeyHTTPTimeout,
	KeyHTTPRateLimit,
	KeyWatch,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.CatalogSettings, error) {
	defaults := domain.DefaultCatalogSettings()

	settings := &domain.CatalogSettings{
		Provider: domain.Provider{
			Key:         s.configStore.GetString(KeyProviderKey), // Empty is valid - key is inferred
			Name:        s.getString(KeyProviderName, defaults.Provider.Name),
			DatasetPath: s.getString(KeyDatasetPath, defaults.Provider.DatasetPath),
			GroupsPath:  s.getOptionalString(KeyGroupsPath, defaults.Provider.GroupsPath),
		},
		HTTP: domain.HTTPSettings{
			Timeout:           s.getDuration(KeyHTTPTimeout, defaults.HTTP.Timeout),
			RequestsPerSecond: s.getFloat(KeyHTTPRateLimit, defaults.HTTP.RequestsPerSecond),
		},
		Watch: s.getBool(KeyWatch, defaults.Watch),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.CatalogSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyProviderKey, settings.Provider.Key},
		{KeyProviderName, settings.Provider.Name},
		{KeyDatasetPath, settings.Provider.DatasetPath},
		{KeyGroupsPath, settings.Provider.GroupsPath},
		{KeyHTTPTimeout, settings.HTTP.Timeout.String()},
		{KeyHTTPRateLimit, settings.HTTP.RequestsPerSecond},
		{KeyWatch, settings.Watch},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	var stored any

	switch key {
	case KeyProviderKey, KeyProviderName, KeyGroupsPath:
		stored = strings.TrimSpace(value)
	case KeyDatasetPath:
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("%s cannot be empty: %w", key, domain.ErrInvalidInput)
		}
		stored = value
	case KeyHTTPTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid duration %q for %s: %w", value, key, domain.ErrInvalidInput)
		}
		stored = d.String()
	case KeyHTTPRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid rate %q for %s: %w", value, key, domain.ErrInvalidInput)
		}
		stored = f
	case KeyWatch:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q for %s: %w", value, key, domain.ErrInvalidInput)
		}
		stored = b
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrNotFound)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// getString returns a string value or the default if unset or empty.
func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

// getOptionalString returns a string value, the default if unset, and ""
// if explicitly set to empty.
func (s *SettingsService) getOptionalString(key, defaultVal string) string {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

// getBool returns a bool value or the default if unset.
func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getDuration returns a duration value or the default if unset or invalid.
func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(s.configStore.GetString(key))
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

// getFloat returns a non-negative numeric value or the default if unset
// or invalid.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if v, ok := s.configStore.GetFloat(key); ok && v >= 0 {
		return v
	}
	return defaultVal
}
