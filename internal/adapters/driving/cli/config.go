package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long: `View and change the stored settings: which dataset to load, the group
definitions to apply, the provider labels and HTTP behaviour.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Validate and store a single setting.

Keys:
  provider.key                 key used to look up group definitions
  provider.name                provider name shown in messages
  dataset.path                 category dataset URL or file path
  groups.path                  group definitions URL or file path ("" disables)
  http.timeout                 request timeout, e.g. 30s
  http.requests_per_second     request rate limit (0 = unlimited)
  dataset.watch                reload when a local dataset changes (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return ErrNotConfigured
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n\n", s.ConfigPath)
	for _, key := range s.Settings.Keys() {
		fmt.Fprintf(out, "  %-26s %s\n", key, settingValue(settings, key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return ErrNotConfigured
	}

	key, value := args[0], args[1]
	if err := s.Settings.Set(key, value); err != nil {
		return err
	}
	cmd.Printf("%s updated\n", key)
	return nil
}

// settingValue formats the value shown for key.
func settingValue(settings *domain.CatalogSettings, key string) string {
	switch key {
	case services.KeyProviderKey:
		if settings.Provider.Key == "" {
			if inferred := settings.Provider.ResolvedKey(); inferred != "" {
				return fmt.Sprintf("(inferred: %s)", inferred)
			}
			return "(not set)"
		}
		return settings.Provider.Key
	case services.KeyProviderName:
		return settings.Provider.Name
	case services.KeyDatasetPath:
		return settings.Provider.DatasetPath
	case services.KeyGroupsPath:
		if settings.Provider.GroupsPath == "" {
			return "(disabled)"
		}
		return settings.Provider.GroupsPath
	case services.KeyHTTPTimeout:
		return settings.HTTP.Timeout.String()
	case services.KeyHTTPRateLimit:
		if settings.HTTP.RequestsPerSecond == 0 {
			return "unlimited"
		}
		return strconv.FormatFloat(settings.HTTP.RequestsPerSecond, 'f', -1, 64)
	case services.KeyWatch:
		return strconv.FormatBool(settings.Watch)
	default:
		return ""
	}
}
