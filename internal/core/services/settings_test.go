package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultCatalogSettings()
	assert.Equal(t, defaults, *settings)
	assert.Empty(t, settings.Provider.Key)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		KeyProviderKey:   "aws",
		KeyProviderName:  "AWS",
		KeyDatasetPath:   "https://example.com/aws.json",
		KeyGroupsPath:    "groups.yaml",
		KeyHTTPTimeout:   "5s",
		KeyHTTPRateLimit: int64(2),
		KeyWatch:         true,
	})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "aws", settings.Provider.Key)
	assert.Equal(t, "AWS", settings.Provider.Name)
	assert.Equal(t, "https://example.com/aws.json", settings.Provider.DatasetPath)
	assert.Equal(t, "groups.yaml", settings.Provider.GroupsPath)
	assert.Equal(t, 5*time.Second, settings.HTTP.Timeout)
	assert.InDelta(t, 2.0, settings.HTTP.RequestsPerSecond, 0.0001)
	assert.True(t, settings.Watch)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyHTTPTimeout, "soon")
	_ = store.Set(KeyHTTPRateLimit, -3.0)
	_ = store.Set(KeyDatasetPath, "")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultCatalogSettings()
	assert.Equal(t, defaults.HTTP.Timeout, settings.HTTP.Timeout)
	assert.Zero(t, settings.HTTP.RequestsPerSecond)
	assert.Equal(t, defaults.Provider.DatasetPath, settings.Provider.DatasetPath)
}

func TestSettingsService_Get_EmptyGroupsPathDisablesGroups(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyGroupsPath, "")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Empty(t, settings.Provider.GroupsPath)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.CatalogSettings{
		Provider: domain.Provider{
			Key:         "azure",
			Name:        "Azure",
			DatasetPath: "azure.json",
		},
		HTTP:  domain.HTTPSettings{Timeout: 10 * time.Second, RequestsPerSecond: 1.5},
		Watch: true,
	}

	require.NoError(t, service.Save(&want))
	got, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.Equal(t, "10s", store.GetString(KeyHTTPTimeout))
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyProviderName, "  Oracle Cloud "))
	require.NoError(t, service.Set(KeyHTTPTimeout, "1m"))
	require.NoError(t, service.Set(KeyHTTPRateLimit, "0.5"))
	require.NoError(t, service.Set(KeyWatch, "true"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "Oracle Cloud", settings.Provider.Name)
	assert.Equal(t, time.Minute, settings.HTTP.Timeout)
	assert.InDelta(t, 0.5, settings.HTTP.RequestsPerSecond, 0.0001)
	assert.True(t, settings.Watch)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty dataset", KeyDatasetPath, "  "},
		{"bad duration", KeyHTTPTimeout, "forever"},
		{"negative duration", KeyHTTPTimeout, "-1s"},
		{"bad rate", KeyHTTPRateLimit, "fast"},
		{"negative rate", KeyHTTPRateLimit, "-2"},
		{"bad bool", KeyWatch, "perhaps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Set_UnknownKey(t *testing.T) {
	err := NewSettingsService(memory.NewConfigStore()).Set("search.mode", "hybrid")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	assert.Contains(t, keys, KeyDatasetPath)
	assert.Len(t, keys, 7)

	keys[0] = "mutated"
	assert.Equal(t, KeyProviderKey, service.Keys()[0])
}
