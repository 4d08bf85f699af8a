package memory

import (
	"maps"
	"strconv"
	"sync"

	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps catalog settings in memory only. With --no-config the
// command-line flags are the only source of settings, so nothing is read
// from or written to disk.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreWith(nil)
}

// NewConfigStoreWith creates a store seeded with a copy of values.
func NewConfigStoreWith(values map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any, len(values))}
	maps.Copy(s.values, values)
	return s
}

// Get retrieves a setting by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func lookup[T any](s *ConfigStore, key string) T {
	val, _ := s.Get(key)
	t, _ := val.(T)
	return t
}

// GetString returns a string setting, or "" for a missing or non-string value.
func (s *ConfigStore) GetString(key string) string {
	return lookup[string](s, key)
}

// GetBool returns a boolean setting, or false for a missing or non-boolean value.
func (s *ConfigStore) GetBool(key string) bool {
	return lookup[bool](s, key)
}

// GetFloat reads numbers the way the TOML store does, so http.requests_per_second
// behaves the same with and without a config file.
func (s *ConfigStore) GetFloat(key string) (float64, bool) {
	switch v := lookup[any](s, key).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// Set stores a setting for the life of the process.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save does nothing; settings are never persisted.
func (s *ConfigStore) Save() error { return nil }

// Load does nothing; there is no file to read.
func (s *ConfigStore) Load() error { return nil }

// Path reports the pseudo path shown by `config show`.
func (s *ConfigStore) Path() string { return ":memory:" }
