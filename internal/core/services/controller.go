package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// Ensure ViewController implements the interface.
var _ driving.CatalogBrowser = (*ViewController)(nil)

// ViewController errors.
var (
	// ErrMissingLoader is returned when no catalog loader is provided.
	ErrMissingLoader = errors.New("view controller: catalog loader is required")

	// ErrMissingResolver is returned when no group resolver is provided.
	ErrMissingResolver = errors.New("view controller: group resolver is required")

	// ErrMissingRenderer is returned when no renderer is provided.
	ErrMissingRenderer = errors.New("view controller: renderer is required")
)

// ViewController owns the view state machine: the category list, or the
// service list of one category. Every transition returns the Screen to
// display, so it has no knowledge of any UI toolkit.
//
// ViewController is not safe for concurrent use; drive it from a single
// goroutine (the TUI does so from its Update loop).
type ViewController struct {
	loader      driving.CatalogLoader
	resolver    driving.GroupResolver
	renderer    driving.Renderer
	providerKey string
	provider    string

	state   domain.ViewState
	catalog *domain.Catalog
	groups  []domain.ResolvedGroup
	flip    FlipState
	screen  domain.Screen
	err     error
}

// NewViewController creates a controller with injected collaborators.
// provider supplies the group definition key and the name used in error text.
func NewViewController(
	loader driving.CatalogLoader,
	resolver driving.GroupResolver,
	renderer driving.Renderer,
	provider domain.Provider,
) (*ViewController, error) {
	if loader == nil {
		return nil, ErrMissingLoader
	}
	if resolver == nil {
		return nil, ErrMissingResolver
	}
	if renderer == nil {
		return nil, ErrMissingRenderer
	}

	return &ViewController{
		loader:      loader,
		resolver:    resolver,
		renderer:    renderer,
		providerKey: provider.ResolvedKey(),
		provider:    provider.Name,
		state:       domain.CategoryListState(),
		flip:        NewFlipState(),
	}, nil
}

// Init loads the catalog and renders the category list. A failed load
// renders the terminal load-error screen; no partial list is shown.
func (c *ViewController) Init(ctx context.Context) domain.Screen {
	c.state = domain.CategoryListState()
	c.groups = nil
	c.flip.Reset()

	catalog, err := c.loader.Load(ctx)
	if err != nil {
		c.catalog = nil
		c.err = err
		logLoadError(c.provider, err)
		c.screen = c.renderer.LoadFailed(c.provider)
		return c.screen
	}

	c.catalog = catalog
	c.err = nil
	logger.Info("catalog ready: %d categories, provider key %q", len(catalog.Categories), c.providerKey)
	c.screen = c.renderer.Categories(catalog.Categories)
	return c.screen
}

// Reload re-runs Init. The view returns to the category list.
func (c *ViewController) Reload(ctx context.Context) domain.Screen {
	return c.Init(ctx)
}

// Show enters the service list of category, resolving its groups afresh
// and collapsing every tile.
func (c *ViewController) Show(category domain.Category) domain.Screen {
	c.state = domain.ServiceListState(category)
	c.flip.Reset()

	var defs []domain.GroupDefinition
	if c.catalog != nil {
		defs = c.catalog.Groups.For(c.providerKey, category.Key())
	}
	c.groups = c.resolver.Resolve(category.Services, defs)
	logger.Debug("show %q: %d services, %d groups", category.Key(), len(category.Services), len(c.groups))

	return c.render()
}

// ShowIndex enters the service list of the category at index.
func (c *ViewController) ShowIndex(index int) (domain.Screen, error) {
	if c.catalog == nil {
		return c.screen, domain.ErrNotLoaded
	}
	if index < 0 || index >= len(c.catalog.Categories) {
		return c.screen, fmt.Errorf("category %d: %w", index, domain.ErrNotFound)
	}
	return c.Show(c.catalog.Categories[index]), nil
}

// ShowKey enters the service list of the category whose Key matches key.
func (c *ViewController) ShowKey(key string) (domain.Screen, error) {
	if c.catalog == nil {
		return c.screen, domain.ErrNotLoaded
	}
	for i := range c.catalog.Categories {
		if c.catalog.Categories[i].Key() == key {
			return c.Show(c.catalog.Categories[i]), nil
		}
	}
	return c.screen, fmt.Errorf("category %q: %w", key, domain.ErrNotFound)
}

// Select enters the service list of the category named by ref: a category
// key first, then a zero-based index.
func (c *ViewController) Select(ref string) (domain.Screen, error) {
	screen, err := c.ShowKey(ref)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return screen, err
	}
	index, convErr := strconv.Atoi(strings.TrimSpace(ref))
	if convErr != nil {
		return screen, err
	}
	return c.ShowIndex(index)
}

// Back returns to the category list. It is a no-op in the category list.
func (c *ViewController) Back() domain.Screen {
	if c.state.Kind == domain.ViewCategoryList {
		return c.screen
	}
	c.state = domain.CategoryListState()
	c.groups = nil
	c.flip.Reset()
	return c.render()
}

// Toggle flips the service tile at position, collapsing any other.
func (c *ViewController) Toggle(position int) (domain.Screen, error) {
	if c.state.Kind != domain.ViewServiceList {
		return c.screen, domain.ErrWrongView
	}
	if _, ok := c.screen.ServiceTile(position); !ok {
		return c.screen, fmt.Errorf("tile %d: %w", position, domain.ErrNotFound)
	}
	c.flip.Toggle(position)
	return c.render(), nil
}

// Link returns the outbound link of the tile at position. It never
// changes flip state.
func (c *ViewController) Link(position int) (string, bool) {
	if c.state.Kind != domain.ViewServiceList {
		return "", false
	}
	tile, ok := c.screen.ServiceTile(position)
	if !ok || tile.Link == "" || tile.Link == fallbackLink {
		return "", false
	}
	return tile.Link, true
}

// Screen returns the most recently rendered screen.
func (c *ViewController) Screen() domain.Screen {
	return c.screen
}

// State returns the current view state.
func (c *ViewController) State() domain.ViewState {
	return c.state
}

// Groups returns the groups resolved for the current service list, or nil.
func (c *ViewController) Groups() []domain.ResolvedGroup {
	return c.groups
}

// Categories returns the loaded categories.
func (c *ViewController) Categories() []domain.Category {
	if c.catalog == nil {
		return nil
	}
	return c.catalog.Categories
}

// Err returns the load error, if the last Init failed.
func (c *ViewController) Err() error {
	return c.err
}

func (c *ViewController) render() domain.Screen {
	switch {
	case c.catalog == nil && c.err != nil:
		c.screen = c.renderer.LoadFailed(c.provider)
	case c.state.Kind == domain.ViewServiceList && c.state.Category != nil:
		c.screen = c.renderer.Services(*c.state.Category, c.groups, c.flip.Flipped())
	default:
		c.screen = c.renderer.Categories(c.Categories())
	}
	return c.screen
}

// logLoadError logs the load failure with its kind. The user-visible screen
// does not distinguish kinds.
func logLoadError(provider string, err error) {
	var loadErr *domain.LoadError
	if errors.As(err, &loadErr) {
		logger.Error("failed to load %s services data (%s): %v", provider, loadErr.Kind, err)
		return
	}
	logger.Error("failed to load %s services data: %v", provider, err)
}
