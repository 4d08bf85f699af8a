// Package mcp provides an MCP (Model Context Protocol) server adapter for cloudtiles.
// It lets AI assistants read the service catalog: categories, and the grouped
// services of a category.
package mcp

import "errors"

// ErrMissingBrowser is returned when the catalog browser is not provided.
var ErrMissingBrowser = errors.New("mcp: catalog browser is required")

// ErrCatalogUnavailable is returned when the catalog could not be loaded.
var ErrCatalogUnavailable = errors.New("mcp: catalog unavailable")
