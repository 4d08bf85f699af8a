package mcp

import (
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Browser is the catalog view state machine. The server serialises
	// access to it.
	Browser driving.CatalogBrowser
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Browser == nil {
		return ErrMissingBrowser
	}
	return nil
}
