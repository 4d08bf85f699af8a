// Package tui provides an interactive terminal user interface for cloudtiles.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Browser is the catalog view state machine.
	Browser driving.CatalogBrowser

	// Links opens and copies service links. Optional.
	Links driving.LinkActionService

	// Changes receives a value whenever the dataset changes on disk.
	// Optional; a closed channel stops watching.
	Changes <-chan struct{}
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(browser driving.CatalogBrowser, links driving.LinkActionService) *Ports {
	return &Ports{
		Browser: browser,
		Links:   links,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Browser == nil {
		return ErrMissingBrowser
	}
	return nil
}
