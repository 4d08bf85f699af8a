package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for catalog resources.
	uriScheme = "catalog://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the category list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "All service categories with their service counts",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	// Template for the services of one category.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{category}/services",
		Name:        "category-services",
		Description: "Services of a category (id or zero-based index), grouped as displayed",
		MIMEType:    "application/json",
	}, s.handleServicesResource)
}

// handleCategoriesResource returns the category list.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	screen, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, categoriesOutput(screen))
}

// handleServicesResource returns the services of one category.
func (s *Server) handleServicesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract the category from URI: catalog://categories/{category}/services
	ref := extractCategoryRef(req.Params.URI)
	if ref == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	screen, tile, err := s.category(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, servicesOutput(tile, screen))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCategoryRef extracts the category from a URI like
// catalog://categories/{category}/services.
func extractCategoryRef(uri string) string {
	const prefix = uriScheme + "categories/"
	const suffix = "/services"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	ref, err := url.PathUnescape(strings.TrimSuffix(uri, suffix))
	if err != nil {
		return ""
	}
	return ref
}
