package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

var (
	categoriesJSON bool
	servicesJSON   bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List service categories",
	Long: `Loads the catalog and prints one line per category with its service
count. The index or id shown can be passed to the services command.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

var servicesCmd = &cobra.Command{
	Use:   "services <category>",
	Short: "List the services of a category",
	Long: `Prints the services of a category, grouped the same way as the
interactive browser. The category is its id, or its zero-based index
when the category has no id.`,
	Args: cobra.ExactArgs(1),
	RunE: runServices,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output categories as JSON")
	servicesCmd.Flags().BoolVar(&servicesJSON, "json", false, "output services as JSON")
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(servicesCmd)
}

// servicesView is the JSON shape of the services command.
type servicesView struct {
	Title       string           `json:"title"`
	Placeholder string           `json:"placeholder,omitempty"`
	Grouped     bool             `json:"grouped"`
	Sections    []domain.Section `json:"sections"`
}

func runCategories(cmd *cobra.Command, _ []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}

	screen := s.Browser.Init(cmd.Context())
	if err := s.Browser.Err(); err != nil {
		return fmt.Errorf("%s: %w", screen.Placeholder, err)
	}

	out := cmd.OutOrStdout()
	if categoriesJSON {
		tiles := screen.CategoryTiles
		if tiles == nil {
			tiles = []domain.CategoryTile{}
		}
		return writeJSON(out, tiles)
	}

	fmt.Fprintln(out, screen.Title)
	fmt.Fprintln(out)
	if screen.Placeholder != "" {
		fmt.Fprintf(out, "  %s\n", screen.Placeholder)
		return nil
	}
	for i := range screen.CategoryTiles {
		tile := &screen.CategoryTiles[i]
		fmt.Fprintf(out, "  [%s] %s (%s)\n", tile.Key, tile.Name, tile.Badge)
		if tile.Description != "" {
			fmt.Fprintf(out, "      %s\n", tile.Description)
		}
	}
	return nil
}

func runServices(cmd *cobra.Command, args []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}

	loaded := s.Browser.Init(cmd.Context())
	if err := s.Browser.Err(); err != nil {
		return fmt.Errorf("%s: %w", loaded.Placeholder, err)
	}

	screen, err := s.Browser.Select(args[0])
	if err != nil {
		return fmt.Errorf("category %q: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if servicesJSON {
		sections := screen.Sections
		if sections == nil {
			sections = []domain.Section{}
		}
		return writeJSON(out, servicesView{
			Title:       screen.Title,
			Placeholder: screen.Placeholder,
			Grouped:     screen.Grouped,
			Sections:    sections,
		})
	}

	printServices(out, &screen)
	return nil
}

func printServices(out io.Writer, screen *domain.Screen) {
	fmt.Fprintln(out, screen.Title)
	if screen.Placeholder != "" {
		fmt.Fprintf(out, "\n  %s\n", screen.Placeholder)
		return
	}

	for i := range screen.Sections {
		section := &screen.Sections[i]
		fmt.Fprintln(out)
		indent := "  "
		if screen.Grouped {
			if section.Title != "" {
				fmt.Fprintf(out, "  %s\n", section.Title)
				indent = "    "
			}
			if section.Description != "" {
				fmt.Fprintf(out, "  %s\n", section.Description)
				indent = "    "
			}
		}
		for j := range section.Tiles {
			tile := &section.Tiles[j]
			line := tile.Name
			if tile.Summary != "" {
				line += " - " + tile.Summary
			}
			fmt.Fprintf(out, "%s%s\n", indent, line)
			for _, feature := range tile.Features {
				fmt.Fprintf(out, "%s  • %s\n", indent, feature)
			}
			if tile.Link != "" && tile.Link != "#" {
				fmt.Fprintf(out, "%s  %s\n", indent, tile.Link)
			}
		}
	}
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(out, strings.TrimSpace(string(data)))
	return err
}
