package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

const (
	datasetPath = "data/google-cloud-services.json"
	groupsPath  = "data/service-groups.json"
)

const bareDataset = `[
	{"id": "compute", "name": "Compute", "services": [{"name": "GCE"}, {"name": "GKE"}]},
	{"name": "Storage", "services": [{"name": "GCS"}]}
]`

const wrappedDataset = `{"categories": [
	{"id": "compute", "name": "Compute", "services": [{"name": "GCE"}, {"name": "GKE"}]},
	{"name": "Storage", "services": [{"name": "GCS"}]}
]}`

const groupsJSON = `{"gcp": {"compute": [{"title": "VMs", "services": ["GCE"]}]}}`

func testProvider() domain.Provider {
	return domain.Provider{Key: "gcp", Name: "Google Cloud", DatasetPath: datasetPath, GroupsPath: groupsPath}
}

func TestDatasetLoader_LoadCategories_BothShapesEquivalent(t *testing.T) {
	bare := NewDatasetLoader(newMockFetcher().with(datasetPath, bareDataset), testProvider())
	wrapped := NewDatasetLoader(newMockFetcher().with(datasetPath, wrappedDataset), testProvider())

	fromBare, err := bare.LoadCategories(context.Background())
	require.NoError(t, err)
	fromWrapped, err := wrapped.LoadCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fromBare, fromWrapped)
	require.Len(t, fromBare, 2)
	assert.Equal(t, "compute", fromBare[0].Key())
	assert.Equal(t, "1", fromBare[1].Key())
	assert.Equal(t, 1, fromBare[1].Index)
}

func TestDatasetLoader_LoadCategories_HTTPError(t *testing.T) {
	fetcher := newMockFetcher().failing(datasetPath, domain.NewHTTPError(503))
	loader := NewDatasetLoader(fetcher, testProvider())

	_, err := loader.LoadCategories(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)
	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 503, loadErr.Status)
}

func TestDatasetLoader_LoadCategories_FormatErrors(t *testing.T) {
	bodies := map[string]string{
		"string":              `"hello"`,
		"number":              `42`,
		"object without key":  `{"items": []}`,
		"categories not list": `{"categories": {"a": 1}}`,
		"categories null":     `{"categories": null}`,
		"truncated":           `[{"name": "x"`,
		"empty":               ``,
		"not json":            `<html></html>`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			loader := NewDatasetLoader(newMockFetcher().with(datasetPath, body), testProvider())

			_, err := loader.LoadCategories(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidFormat)
			assert.NotErrorIs(t, err, domain.ErrHTTPStatus)
		})
	}
}

func TestDatasetLoader_LoadCategories_TransportError(t *testing.T) {
	loader := NewDatasetLoader(newMockFetcher().failing(datasetPath, errBoom), testProvider())

	_, err := loader.LoadCategories(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}

func TestDatasetLoader_LoadCategories_EmptyArray(t *testing.T) {
	loader := NewDatasetLoader(newMockFetcher().with(datasetPath, `[]`), testProvider())

	categories, err := loader.LoadCategories(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestDatasetLoader_LoadCategories_SkipsMalformedEntries(t *testing.T) {
	body := `[
		{"id": "c", "name": "C", "services": [{"name": "ok1"}, {"name": "bad", "summary": 5}, {"name": "ok2"}]},
		42,
		{"id": "d", "name": "D", "services": []}
	]`
	loader := NewDatasetLoader(newMockFetcher().with(datasetPath, body), testProvider())

	categories, err := loader.LoadCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Len(t, categories[0].Services, 2)
	assert.Equal(t, "ok1", categories[0].Services[0].Name)
	assert.Equal(t, "ok2", categories[0].Services[1].Name)
	assert.Equal(t, 1, categories[0].SkippedServices())
	assert.Equal(t, "d", categories[1].Key())
	assert.Equal(t, 1, categories[1].Index)
}

func TestDatasetLoader_NoFetcher(t *testing.T) {
	loader := NewDatasetLoader(nil, testProvider())

	_, err := loader.LoadCategories(context.Background())
	assert.ErrorIs(t, err, ErrNoFetcher)

	assert.Empty(t, loader.LoadGroupDefinitions(context.Background()))
}

func TestDatasetLoader_LoadGroupDefinitions(t *testing.T) {
	loader := NewDatasetLoader(newMockFetcher().with(groupsPath, groupsJSON), testProvider())

	defs := loader.LoadGroupDefinitions(context.Background())

	got := defs.For("gcp", "compute")
	require.Len(t, got, 1)
	assert.Equal(t, "VMs", got[0].Title)
	assert.Equal(t, []string{"GCE"}, got[0].Services)
}

func TestDatasetLoader_LoadGroupDefinitions_NeverFails(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *mockFetcher
	}{
		{"http error", newMockFetcher().failing(groupsPath, domain.NewHTTPError(500))},
		{"transport error", newMockFetcher().failing(groupsPath, errBoom)},
		{"malformed body", newMockFetcher().with(groupsPath, `{"gcp": [1, 2]}`)},
		{"not json", newMockFetcher().with(groupsPath, `nope`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewDatasetLoader(tt.fetcher, testProvider())

			defs := loader.LoadGroupDefinitions(context.Background())

			assert.NotNil(t, defs)
			assert.Empty(t, defs)
		})
	}
}

func TestDatasetLoader_LoadGroupDefinitions_NoPath(t *testing.T) {
	fetcher := newMockFetcher()
	provider := testProvider()
	provider.GroupsPath = ""
	loader := NewDatasetLoader(fetcher, provider)

	defs := loader.LoadGroupDefinitions(context.Background())

	assert.Empty(t, defs)
	assert.Empty(t, fetcher.fetched)
}

func TestDatasetLoader_LoadGroupDefinitions_YAML(t *testing.T) {
	provider := testProvider()
	provider.GroupsPath = "data/groups.yaml"
	yamlBody := `
gcp:
  compute:
    - title: VMs
      description: Virtual machines
      services: [GCE]
`
	loader := NewDatasetLoader(newMockFetcher().with(provider.GroupsPath, yamlBody), provider)

	defs := loader.LoadGroupDefinitions(context.Background())

	got := defs.For("gcp", "compute")
	require.Len(t, got, 1)
	assert.Equal(t, "Virtual machines", got[0].Description)
}

func TestDatasetLoader_Load(t *testing.T) {
	fetcher := newMockFetcher().with(datasetPath, bareDataset).with(groupsPath, groupsJSON)
	loader := NewDatasetLoader(fetcher, testProvider())

	catalog, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, catalog.Categories, 2)
	assert.Len(t, catalog.Groups.For("gcp", "compute"), 1)
	assert.ElementsMatch(t, []string{datasetPath, groupsPath}, fetcher.fetched)
}

func TestDatasetLoader_Load_FetchesDoNotBlockEachOther(t *testing.T) {
	gate := make(chan struct{})
	done := make(chan string, 2)
	fetcher := newMockFetcher().
		with(datasetPath, bareDataset).
		with(groupsPath, groupsJSON).
		blocking(groupsPath, gate).
		notifying(done)
	loader := NewDatasetLoader(fetcher, testProvider())

	result := make(chan *domain.Catalog, 1)
	go func() {
		catalog, err := loader.Load(context.Background())
		assert.NoError(t, err)
		result <- catalog
	}()

	select {
	case location := <-done:
		assert.Equal(t, datasetPath, location)
	case <-time.After(2 * time.Second):
		t.Fatal("categories fetch did not finish while groups fetch was blocked")
	}

	select {
	case <-result:
		t.Fatal("Load returned before the groups fetch finished")
	default:
	}

	close(gate)

	select {
	case catalog := <-result:
		require.NotNil(t, catalog)
		assert.Len(t, catalog.Categories, 2)
		assert.Len(t, catalog.Groups.For("gcp", "compute"), 1)
	case <-time.After(2 * time.Second):
		t.Fatal("Load did not return after the groups fetch was released")
	}
}

func TestDatasetLoader_Load_GroupFailureDoesNotAbort(t *testing.T) {
	fetcher := newMockFetcher().with(datasetPath, bareDataset).failing(groupsPath, errBoom)
	loader := NewDatasetLoader(fetcher, testProvider())

	catalog, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, catalog.Categories, 2)
	assert.Empty(t, catalog.Groups)
}

func TestDatasetLoader_Load_CategoryFailureIsFatal(t *testing.T) {
	fetcher := newMockFetcher().failing(datasetPath, domain.NewHTTPError(404)).with(groupsPath, groupsJSON)
	loader := NewDatasetLoader(fetcher, testProvider())

	catalog, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.Nil(t, catalog)
	assert.True(t, errors.Is(err, domain.ErrHTTPStatus))
}

func TestIsYAMLPath(t *testing.T) {
	assert.True(t, isYAMLPath("groups.yaml"))
	assert.True(t, isYAMLPath("https://example.com/groups.YML?v=2"))
	assert.False(t, isYAMLPath("groups.json"))
	assert.False(t, isYAMLPath("groups"))
}
