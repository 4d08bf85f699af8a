package driving

import (
	"context"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

// CatalogLoader loads the datasets a catalog is built from.
type CatalogLoader interface {
	// LoadCategories fetches and validates the category dataset.
	// Fails with *domain.LoadError on bad status or body shape.
	LoadCategories(ctx context.Context) ([]domain.Category, error)

	// LoadGroupDefinitions fetches the optional group definitions.
	// It never fails; problems yield an empty mapping.
	LoadGroupDefinitions(ctx context.Context) domain.GroupDefinitions

	// Load runs both fetches concurrently and waits for both.
	Load(ctx context.Context) (*domain.Catalog, error)
}

// GroupResolver organises a category's services into groups.
type GroupResolver interface {
	// Resolve returns ordered groups, or nil when services should be
	// shown as a flat list.
	Resolve(services []domain.Service, definitions []domain.GroupDefinition) []domain.ResolvedGroup
}

// Renderer turns view state into a screen description.
type Renderer interface {
	// Categories renders the category grid.
	Categories(categories []domain.Category) domain.Screen

	// Services renders a category's service grid. groups may be nil for
	// a flat grid. flipped is the position of the flipped tile, or -1.
	Services(category domain.Category, groups []domain.ResolvedGroup, flipped int) domain.Screen

	// LoadFailed renders the terminal load-error screen.
	LoadFailed(providerName string) domain.Screen
}

// CatalogBrowser is the view state machine driven by the TUI and MCP
// adapters. Every transition returns the screen to display.
type CatalogBrowser interface {
	// Init loads the catalog and shows the category list, or the
	// load-error screen on failure.
	Init(ctx context.Context) domain.Screen

	// Reload re-runs Init.
	Reload(ctx context.Context) domain.Screen

	// ShowIndex enters the service list of the category at index.
	ShowIndex(index int) (domain.Screen, error)

	// ShowKey enters the service list of the category with the given key.
	ShowKey(key string) (domain.Screen, error)

	// Select enters the service list named by a category key or index.
	Select(ref string) (domain.Screen, error)

	// Back returns to the category list.
	Back() domain.Screen

	// Toggle flips the service tile at position, collapsing any other.
	Toggle(position int) (domain.Screen, error)

	// Link returns the outbound link of the tile at position.
	Link(position int) (string, bool)

	// Screen returns the most recently rendered screen.
	Screen() domain.Screen

	// State returns the current view state.
	State() domain.ViewState

	// Groups returns the groups of the current service list, or nil.
	Groups() []domain.ResolvedGroup

	// Categories returns the loaded categories.
	Categories() []domain.Category

	// Err returns the error of the last load, or nil.
	Err() error
}
