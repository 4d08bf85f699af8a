package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

// ListCategoriesInput is the input schema for the list_categories tool.
type ListCategoriesInput struct{}

// CategoriesOutput is the output schema for the list_categories and
// reload_catalog tools.
type CategoriesOutput struct {
	Title       string                `json:"title"`
	Placeholder string                `json:"placeholder,omitempty"`
	Categories  []domain.CategoryTile `json:"categories"`
	Count       int                   `json:"count"`
}

// ShowCategoryInput is the input schema for the show_category tool.
type ShowCategoryInput struct {
	Category string `json:"category" jsonschema:"category id, or zero-based index when the category has no id"`
}

// ServicesOutput is the output schema for the show_category tool.
type ServicesOutput struct {
	Category    domain.CategoryTile `json:"category"`
	Title       string              `json:"title"`
	Placeholder string              `json:"placeholder,omitempty"`
	Grouped     bool                `json:"grouped"`
	Sections    []domain.Section    `json:"sections"`
	Count       int                 `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the service categories of the catalog",
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "show_category",
		Description: "Show the services of one category, grouped as the catalog displays them",
	}, s.handleShowCategory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reload_catalog",
		Description: "Re-read the catalog datasets and list the categories",
	}, s.handleReload)
}

// handleListCategories handles the list_categories tool invocation.
func (s *Server) handleListCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	screen, err := s.categories(ctx)
	if err != nil {
		return nil, CategoriesOutput{}, err
	}
	return nil, categoriesOutput(screen), nil
}

// handleShowCategory handles the show_category tool invocation.
func (s *Server) handleShowCategory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ShowCategoryInput,
) (*mcp.CallToolResult, ServicesOutput, error) {
	screen, tile, err := s.category(ctx, input.Category)
	if err != nil {
		return nil, ServicesOutput{}, err
	}
	return nil, servicesOutput(tile, screen), nil
}

// handleReload handles the reload_catalog tool invocation.
func (s *Server) handleReload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	screen, err := s.reload(ctx)
	if err != nil {
		return nil, CategoriesOutput{}, err
	}
	return nil, categoriesOutput(screen), nil
}

func categoriesOutput(screen domain.Screen) CategoriesOutput {
	tiles := screen.CategoryTiles
	if tiles == nil {
		tiles = []domain.CategoryTile{}
	}
	return CategoriesOutput{
		Title:       screen.Title,
		Placeholder: screen.Placeholder,
		Categories:  tiles,
		Count:       len(tiles),
	}
}

func servicesOutput(category domain.CategoryTile, screen domain.Screen) ServicesOutput {
	sections := screen.Sections
	if sections == nil {
		sections = []domain.Section{}
	}
	return ServicesOutput{
		Category:    category,
		Title:       screen.Title,
		Placeholder: screen.Placeholder,
		Grouped:     screen.Grouped,
		Sections:    sections,
		Count:       screen.TileCount(),
	}
}
