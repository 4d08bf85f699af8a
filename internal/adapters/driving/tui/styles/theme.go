// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// TileWidth is the outer width of a tile, border included.
const TileWidth = 30

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the tile border colour.
	Border lipgloss.Color

	// StatusBackground is the status bar background.
	StatusBackground lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:          lipgloss.Color("#4285F4"), // Blue
		Secondary:        lipgloss.Color("#34A853"), // Green
		Foreground:       lipgloss.Color("#E8EAED"), // Light gray
		Muted:            lipgloss.Color("#9AA0A6"), // Medium gray
		Success:          lipgloss.Color("#81C995"), // Soft green
		Warning:          lipgloss.Color("#FBBC04"), // Yellow
		Error:            lipgloss.Color("#EA4335"), // Red
		Border:           lipgloss.Color("#5F6368"), // Border gray
		StatusBackground: lipgloss.Color("#202124"), // Near black
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for screen headers.
	Title lipgloss.Style

	// SectionTitle style for group headings.
	SectionTitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Tile style for an unselected tile.
	Tile lipgloss.Style

	// TileSelected style for the tile under the cursor.
	TileSelected lipgloss.Style

	// TileFlipped style for a tile showing its back face.
	TileFlipped lipgloss.Style

	// TileName style for the name line on a tile's front face.
	TileName lipgloss.Style

	// Badge style for the service count on category tiles.
	Badge lipgloss.Style

	// Link style for outbound links.
	Link lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	tile := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(TileWidth - 2)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		SectionTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Tile: tile,

		TileSelected: tile.
			BorderForeground(theme.Primary),

		TileFlipped: tile.
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Warning),

		TileName: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		Badge: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Link: lipgloss.NewStyle().
			Underline(true).
			Foreground(theme.Primary),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.StatusBackground).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
