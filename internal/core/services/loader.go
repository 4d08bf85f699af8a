package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// Ensure DatasetLoader implements the interface.
var _ driving.CatalogLoader = (*DatasetLoader)(nil)

// ErrNoFetcher is returned when the loader has no fetcher configured.
var ErrNoFetcher = errors.New("dataset fetcher not configured")

// errNoGroupsPath signals that group definitions are not configured.
var errNoGroupsPath = errors.New("no group definitions path configured")

// DatasetLoader fetches and validates the category and group datasets.
type DatasetLoader struct {
	fetcher  driven.DatasetFetcher
	provider domain.Provider
}

// NewDatasetLoader creates a new dataset loader for a provider.
func NewDatasetLoader(fetcher driven.DatasetFetcher, provider domain.Provider) *DatasetLoader {
	return &DatasetLoader{
		fetcher:  fetcher,
		provider: provider,
	}
}

// Provider returns the provider this loader reads.
func (l *DatasetLoader) Provider() domain.Provider {
	return l.provider
}

// LoadCategories fetches the category dataset. Both a top-level array and
// an object with a "categories" array are accepted.
func (l *DatasetLoader) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	if l.fetcher == nil {
		return nil, ErrNoFetcher
	}

	logger.Debug("fetching categories from %s", l.provider.DatasetPath)
	body, err := l.fetcher.Fetch(ctx, l.provider.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}

	categories, err := ParseCategories(body)
	if err != nil {
		return nil, err
	}

	logger.Debug("loaded %d categories", len(categories))
	return categories, nil
}

// ParseCategories decodes a category dataset body and assigns positional
// indexes. Entries that are not valid categories, and services entries that
// are not valid services, are skipped with a warning.
func ParseCategories(body []byte) ([]domain.Category, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, domain.NewFormatError("empty body", nil)
	}

	var items []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, domain.NewFormatError("invalid category array", err)
		}
	case '{':
		var wrapper struct {
			Categories json.RawMessage `json:"categories"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, domain.NewFormatError("invalid JSON object", err)
		}
		raw := bytes.TrimSpace(wrapper.Categories)
		if len(raw) == 0 || raw[0] != '[' {
			return nil, domain.NewFormatError("object has no categories array", nil)
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, domain.NewFormatError("invalid categories array", err)
		}
	default:
		return nil, domain.NewFormatError("body is neither an array nor an object", nil)
	}

	categories := make([]domain.Category, 0, len(items))
	for i, item := range items {
		if entry := bytes.TrimSpace(item); len(entry) == 0 || entry[0] != '{' {
			logger.Warn("skipping category entry %d: not an object", i)
			continue
		}
		var category domain.Category
		if err := json.Unmarshal(item, &category); err != nil {
			logger.Warn("skipping category entry %d: %v", i, err)
			continue
		}
		if n := category.SkippedServices(); n > 0 {
			logger.Warn("category %q: skipped %d malformed service entries", category.Name, n)
		}
		category.Index = len(categories)
		categories = append(categories, category)
	}
	return categories, nil
}

// LoadGroupDefinitions fetches the group definitions. Group definitions are
// an optional enhancement: any failure is logged and yields an empty mapping.
func (l *DatasetLoader) LoadGroupDefinitions(ctx context.Context) domain.GroupDefinitions {
	defs, err := l.loadGroupDefinitions(ctx)
	if err != nil {
		if errors.Is(err, errNoGroupsPath) {
			logger.Debug("group definitions disabled: %v", err)
		} else {
			logger.Warn("group definitions unavailable, falling back to dataset groups: %v", err)
		}
		return domain.GroupDefinitions{}
	}
	return defs
}

func (l *DatasetLoader) loadGroupDefinitions(ctx context.Context) (domain.GroupDefinitions, error) {
	if l.provider.GroupsPath == "" {
		return nil, errNoGroupsPath
	}
	if l.fetcher == nil {
		return nil, ErrNoFetcher
	}

	logger.Debug("fetching group definitions from %s", l.provider.GroupsPath)
	body, err := l.fetcher.Fetch(ctx, l.provider.GroupsPath)
	if err != nil {
		return nil, fmt.Errorf("fetching group definitions: %w", err)
	}

	return ParseGroupDefinitions(body, isYAMLPath(l.provider.GroupsPath))
}

// ParseGroupDefinitions decodes a group definition body, as YAML when
// asYAML is set and JSON otherwise.
func ParseGroupDefinitions(body []byte, asYAML bool) (domain.GroupDefinitions, error) {
	var defs domain.GroupDefinitions
	if asYAML {
		if err := yaml.Unmarshal(body, &defs); err != nil {
			return nil, domain.NewFormatError("invalid group definitions YAML", err)
		}
	} else if err := json.Unmarshal(body, &defs); err != nil {
		return nil, domain.NewFormatError("invalid group definitions JSON", err)
	}

	if defs == nil {
		defs = domain.GroupDefinitions{}
	}
	return defs, nil
}

// Load runs both fetches concurrently. The group fetch never fails, so it
// cannot abort the category fetch; the group is created without a derived
// context for the same reason.
func (l *DatasetLoader) Load(ctx context.Context) (*domain.Catalog, error) {
	var (
		g          errgroup.Group
		categories []domain.Category
		groups     domain.GroupDefinitions
	)

	g.Go(func() error {
		var err error
		categories, err = l.LoadCategories(ctx)
		return err
	})
	g.Go(func() error {
		groups = l.LoadGroupDefinitions(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Catalog{Categories: categories, Groups: groups}, nil
}

func isYAMLPath(location string) bool {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
