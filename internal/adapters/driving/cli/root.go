// Package cli provides the cobra command tree for cloudtiles: the interactive
// browser, plain-text catalog output, config management and the MCP server.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// version is set at build time.
var version = "dev"

// ErrNotConfigured is returned when a command runs before SetFactory.
var ErrNotConfigured = errors.New("cli: services not configured")

// Options holds the global flags.
type Options struct {
	Verbose    bool
	ConfigPath string
	NoConfig   bool
	LogFile    string
	Watch      bool

	Dataset      string
	Groups       string
	GroupsSet    bool
	ProviderKey  string
	ProviderName string
}

// Apply overrides stored settings with the flags that were given.
// An explicit empty --groups disables group definitions.
func (o *Options) Apply(settings *domain.CatalogSettings) {
	if o.Dataset != "" {
		settings.Provider.DatasetPath = o.Dataset
	}
	if o.GroupsSet {
		settings.Provider.GroupsPath = o.Groups
	}
	if o.ProviderKey != "" {
		settings.Provider.Key = o.ProviderKey
	}
	if o.ProviderName != "" {
		settings.Provider.Name = o.ProviderName
	}
	if o.Watch {
		settings.Watch = true
	}
}

// Services holds the core services the commands drive.
type Services struct {
	Settings driving.SettingsService
	Browser  driving.CatalogBrowser
	Links    driving.LinkActionService

	// ConfigPath is where settings are stored.
	ConfigPath string

	// Watch starts watching the dataset for changes. Nil when watching is
	// disabled or the dataset is remote.
	Watch func(ctx context.Context) (<-chan struct{}, error)
}

// Factory builds the services from the parsed global flags.
type Factory func(opts Options) (*Services, error)

var (
	opts    Options
	factory Factory
	svc     *Services
)

var rootCmd = &cobra.Command{
	Use:   "cloudtiles",
	Short: "Browse cloud provider services in the terminal",
	Long: `cloudtiles shows a cloud provider's service catalog as a grid of category
tiles. Selecting a category shows its services, grouped by the provider's
group definitions or by each service's own group label. Service tiles flip
to show details and a link to the official page.

Run without a subcommand to start the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(opts.Verbose)
		opts.GroupsSet = cmd.Flags().Changed("groups")
		return nil
	},
	RunE: runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.cloudtiles/config.toml)")
	flags.BoolVar(&opts.NoConfig, "no-config", false, "ignore the config file and use defaults")
	flags.StringVar(&opts.LogFile, "log-file", "", "write logs here while the TUI runs")
	flags.BoolVar(&opts.Watch, "watch", false, "reload when a local dataset file changes")
	flags.StringVar(&opts.Dataset, "dataset", "", "category dataset URL or file path")
	flags.StringVar(&opts.Groups, "groups", "", "group definitions URL or file path (empty disables)")
	flags.StringVar(&opts.ProviderKey, "provider", "", "provider key used to look up group definitions")
	flags.StringVar(&opts.ProviderName, "provider-name", "", "provider name shown in messages")
}

// SetFactory sets the function that builds services on first use.
func SetFactory(f Factory) {
	factory = f
	svc = nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadServices builds the services once per process.
func loadServices() (*Services, error) {
	if svc != nil {
		return svc, nil
	}
	if factory == nil {
		return nil, ErrNotConfigured
	}

	s, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("initialising: %w", err)
	}
	svc = s
	return svc, nil
}
