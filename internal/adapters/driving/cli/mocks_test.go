package cli

import (
	"bytes"
	"context"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/services"
)

// mockLoader implements driving.CatalogLoader for CLI tests.
type mockLoader struct {
	catalog *domain.Catalog
	err     error
}

func (m *mockLoader) LoadCategories(_ context.Context) ([]domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog.Categories, nil
}

func (m *mockLoader) LoadGroupDefinitions(_ context.Context) domain.GroupDefinitions {
	return m.catalog.Groups
}

func (m *mockLoader) Load(_ context.Context) (*domain.Catalog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Categories: []domain.Category{
			{ID: "compute", Name: "Compute", Description: "Run workloads", Services: []domain.Service{
				{Name: "GCE", Summary: "VMs", Features: []string{"Live migration"}, Link: "https://cloud.google.com/compute"},
				{Name: "GKE", Summary: "Kubernetes"},
			}},
			{Name: "Storage", Index: 1, Services: []domain.Service{
				{Name: "GCS", Group: "Object", GroupDescription: "Blobs"},
			}},
			{ID: "empty", Name: "Empty", Index: 2},
		},
		Groups: domain.GroupDefinitions{
			"gcp": {"compute": {{Title: "Virtual machines", Services: []string{"GCE"}}}},
		},
	}
}

// setupTestServices installs services backed by loader and an in-memory
// config store. The returned func restores global state.
func setupTestServices(loader *mockLoader) func() {
	browser, err := services.NewViewController(loader, services.NewGroupResolver(), services.NewRenderer(),
		domain.Provider{Key: "gcp", Name: "Google Cloud"})
	if err != nil {
		panic(err)
	}

	svc = &Services{
		Settings:   services.NewSettingsService(memory.NewConfigStore()),
		Browser:    browser,
		ConfigPath: ":memory:",
	}

	return func() {
		svc = nil
		factory = nil
		opts = Options{}
		categoriesJSON = false
		servicesJSON = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}

// execute runs the root command with args and returns its output.
// A nil args slice would make cobra read os.Args.
func execute(args ...string) (string, error) {
	if args == nil {
		args = []string{}
	}
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
