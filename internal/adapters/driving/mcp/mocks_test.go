package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/services"
)

// mockLoader is a mock implementation of driving.CatalogLoader.
type mockLoader struct {
	catalog *domain.Catalog
	err     error
	calls   int
}

func (m *mockLoader) LoadCategories(_ context.Context) ([]domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog.Categories, nil
}

func (m *mockLoader) LoadGroupDefinitions(_ context.Context) domain.GroupDefinitions {
	if m.catalog == nil {
		return domain.GroupDefinitions{}
	}
	return m.catalog.Groups
}

func (m *mockLoader) Load(_ context.Context) (*domain.Catalog, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Categories: []domain.Category{
			{ID: "compute", Name: "Compute", Description: "Run workloads", Services: []domain.Service{
				{Name: "GCE", Summary: "VMs", Link: "https://cloud.google.com/compute"},
				{Name: "GKE", Summary: "Kubernetes"},
				{Name: "Cloud Run"},
			}},
			{Name: "Storage", Index: 1, Services: []domain.Service{
				{Name: "GCS", Group: "Object"},
			}},
		},
		Groups: domain.GroupDefinitions{
			"gcp": {"compute": {{Title: "VMs", Services: []string{"GCE"}}}},
		},
	}
}

func newTestServer(t *testing.T, loader *mockLoader) *Server {
	t.Helper()
	browser, err := services.NewViewController(loader, services.NewGroupResolver(), services.NewRenderer(),
		domain.Provider{Key: "gcp", Name: "Google Cloud"})
	require.NoError(t, err)

	server, err := NewServer(&Ports{Browser: browser})
	require.NoError(t, err)
	return server
}
