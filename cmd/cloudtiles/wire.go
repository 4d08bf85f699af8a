package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driven/browser"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driven/fetch"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driven/watch"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/cli"
	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
	"github.com/custodia-labs/cloudtiles/internal/core/services"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// buildServices wires the core services for the given flags.
func buildServices(opts cli.Options) (*cli.Services, error) {
	logger.Section("Wiring")

	store, err := openConfigStore(opts)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(store)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	opts.Apply(settings)
	logger.Debug("dataset %s, groups %q, provider key %q",
		settings.Provider.DatasetPath, settings.Provider.GroupsPath, settings.Provider.ResolvedKey())

	clientConfig := fetch.DefaultClientConfig()
	clientConfig.Timeout = settings.HTTP.Timeout
	fetcher := fetch.NewRouter(
		fetch.NewHTTPFetcher(fetch.NewClient(clientConfig), settings.HTTP.RequestsPerSecond),
		fetch.NewFileFetcher(""),
	)

	loader := services.NewDatasetLoader(fetcher, settings.Provider)
	controller, err := services.NewViewController(
		loader, services.NewGroupResolver(), services.NewRenderer(), settings.Provider)
	if err != nil {
		return nil, err
	}

	var cb driven.Clipboard
	if system := clipboard.New(); system != nil {
		cb = system
	}

	return &cli.Services{
		Settings:   settingsService,
		Browser:    controller,
		Links:      services.NewLinkActionService(browser.NewOpener(), cb),
		ConfigPath: store.Path(),
		Watch:      datasetWatch(settings),
	}, nil
}

// openConfigStore returns the TOML store, or an in-memory one for --no-config.
func openConfigStore(opts cli.Options) (driven.ConfigStore, error) {
	switch {
	case opts.NoConfig:
		return memory.NewConfigStore(), nil
	case opts.ConfigPath != "":
		return file.NewConfigStoreAt(opts.ConfigPath)
	default:
		return file.NewConfigStore("")
	}
}

// datasetWatch returns a watch starter for a local dataset, or nil when
// watching is off or the dataset is remote.
func datasetWatch(settings *domain.CatalogSettings) func(ctx context.Context) (<-chan struct{}, error) {
	location := settings.Provider.DatasetPath
	if !settings.Watch || fetch.IsRemote(location) {
		return nil
	}

	path, err := fetch.NewFileFetcher("").Resolve(location)
	if err != nil {
		logger.Warn("cannot watch %s: %v", location, err)
		return nil
	}

	watcher := watch.NewFileWatcher()
	return func(ctx context.Context) (<-chan struct{}, error) {
		return watcher.Watch(ctx, path)
	}
}
