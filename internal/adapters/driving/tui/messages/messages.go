// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLoading is shown while the catalog is fetched.
	ViewLoading ViewType = iota
	// ViewCategories is the category grid.
	ViewCategories
	// ViewServices is the service grid of one category.
	ViewServices
	// ViewLoadError is the terminal load-error screen.
	ViewLoadError
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewCategories:
		return "categories"
	case ViewServices:
		return "services"
	case ViewLoadError:
		return "load_error"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewFor maps a rendered screen to the view that displays it.
func ViewFor(screen domain.Screen) ViewType {
	switch {
	case screen.Failed:
		return ViewLoadError
	case screen.View == domain.ViewServiceList:
		return ViewServices
	default:
		return ViewCategories
	}
}

// CatalogLoaded carries the screen produced by an initial load or reload.
type CatalogLoaded struct {
	Screen domain.Screen
	Err    error
}

// DatasetChanged signals the local dataset file was modified.
type DatasetChanged struct{}

// CategorySelected is sent when a category tile is activated.
type CategorySelected struct {
	Index int
}

// TileToggled is sent when a service tile is activated.
type TileToggled struct {
	Position int
}

// BackRequested is sent when the user asks to return to the category list.
type BackRequested struct{}

// ReloadRequested is sent when the user asks to reload the datasets.
type ReloadRequested struct{}

// LinkRequested asks for the link of the tile at Position to be opened,
// or copied when Copy is set.
type LinkRequested struct {
	Position int
	Copy     bool
}

// LinkActionCompleted reports the outcome of a LinkRequested.
type LinkActionCompleted struct {
	Link   string
	Copied bool
	Err    error
}

// ScreenChanged carries the screen produced by a synchronous transition.
type ScreenChanged struct {
	Screen domain.Screen
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
