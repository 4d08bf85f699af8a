// Package services provides the service grid view for the TUI.
package services

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/components/grid"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

const (
	// backLabel is shown above the grid when the back control is visible.
	backLabel = "← 戻る"

	// summaryCells caps the summary on a tile's front face.
	summaryCells = 2 * (styles.TileWidth - 4)

	// linkCells caps the URL shown on a tile's back face.
	linkCells = styles.TileWidth - 4
)

// View is the service grid of one category.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	grid     *grid.Grid
	viewport viewport.Model

	screen domain.Screen
	width  int
	height int
	ready  bool
}

// NewView creates a new service grid view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		grid:     grid.New(km),
		viewport: viewport.New(80, 19),
		width:    80,
		height:   24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetScreen replaces the rendered service list. The cursor is kept, so a
// flip re-render does not move it.
func (v *View) SetScreen(screen domain.Screen) {
	v.screen = screen
	v.relayout()
}

// Reset moves the cursor back to the first tile.
func (v *View) Reset() {
	v.grid.Reset()
	v.viewport.GotoTop()
	v.render()
}

// Screen returns the screen being displayed.
func (v *View) Screen() domain.Screen {
	return v.screen
}

// Update handles messages for the service view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		if !v.screen.BackVisible {
			return v, nil
		}
		return v, func() tea.Msg { return messages.BackRequested{} }

	case key.Matches(msg, v.keymap.Select), key.Matches(msg, v.keymap.Flip):
		position := v.grid.Cursor()
		if position < 0 {
			return v, nil
		}
		return v, func() tea.Msg { return messages.TileToggled{Position: position} }

	case key.Matches(msg, v.keymap.Open), key.Matches(msg, v.keymap.Copy):
		position := v.grid.Cursor()
		if position < 0 {
			return v, nil
		}
		copyLink := key.Matches(msg, v.keymap.Copy)
		return v, func() tea.Msg { return messages.LinkRequested{Position: position, Copy: copyLink} }
	}

	before := v.grid.Cursor()
	v.grid, _ = v.grid.Update(msg)
	if v.grid.Cursor() != before {
		v.render()
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the service grid.
func (v *View) View() string {
	var b strings.Builder

	if v.screen.BackVisible {
		b.WriteString(v.styles.Muted.Render(backLabel))
		b.WriteString("  ")
	}
	b.WriteString(v.styles.Title.Render(v.screen.Title))
	b.WriteString("\n\n")

	if v.screen.Placeholder != "" {
		b.WriteString(v.styles.Muted.Render(v.screen.Placeholder))
		return b.String()
	}

	b.WriteString(v.viewport.View())
	return b.String()
}

// Selected returns the cursor position, or -1 when there are no tiles.
func (v *View) Selected() int {
	return v.grid.Cursor()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.viewport.Width = width
	v.viewport.Height = max(1, height-3)
	v.relayout()
}

// Ready reports whether the view has received dimensions.
func (v *View) Ready() bool {
	return v.ready
}

func (v *View) relayout() {
	sizes := make([]int, len(v.screen.Sections))
	for i := range v.screen.Sections {
		sizes[i] = len(v.screen.Sections[i].Tiles)
	}
	v.grid.SetLayout(sizes, grid.ColumnsFor(v.width, styles.TileWidth))
	v.render()
}

func (v *View) render() {
	cursor := v.grid.Cursor()
	blocks := make([]grid.Block, len(v.screen.Sections))

	for i := range v.screen.Sections {
		section := &v.screen.Sections[i]
		tiles := make([]string, len(section.Tiles))
		for j := range section.Tiles {
			tile := &section.Tiles[j]
			tiles[j] = v.renderTile(tile, tile.Position == cursor)
		}
		blocks[i] = grid.Block{Header: v.renderHeader(section), Tiles: tiles}
	}

	content, spans := grid.Layout(blocks, v.grid.Columns())
	v.viewport.SetContent(content)

	if row := v.grid.Row(); row >= 0 && row < len(spans) {
		grid.Follow(&v.viewport, spans[row])
	}
}

func (v *View) renderHeader(section *domain.Section) string {
	if !v.screen.Grouped {
		return ""
	}
	var lines []string
	if section.Title != "" {
		lines = append(lines, v.styles.SectionTitle.Render(section.Title))
	}
	if section.Description != "" {
		lines = append(lines, v.styles.Muted.Render(section.Description))
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderTile(tile *domain.ServiceTile, selected bool) string {
	style := v.styles.Tile
	switch {
	case tile.Flipped:
		style = v.styles.TileFlipped
	case selected:
		style = v.styles.TileSelected
	}

	if tile.Flipped {
		return style.Render(v.backFace(tile))
	}
	return style.Render(v.frontFace(tile))
}

func (v *View) frontFace(tile *domain.ServiceTile) string {
	lines := []string{v.styles.TileName.Render(tile.Name)}
	if tile.Summary != "" {
		lines = append(lines, v.styles.Normal.Render(ansi.Truncate(tile.Summary, summaryCells, "…")))
	}
	lines = append(lines, v.styles.Muted.Render(tile.Hint))
	return strings.Join(lines, "\n")
}

func (v *View) backFace(tile *domain.ServiceTile) string {
	lines := []string{v.styles.TileName.Render(tile.Name)}
	if tile.Details != "" {
		lines = append(lines, v.styles.Normal.Render(tile.Details))
	}
	for _, feature := range tile.Features {
		lines = append(lines, v.styles.Normal.Render("• "+feature))
	}
	lines = append(lines,
		v.styles.Link.Render(tile.LinkLabel),
		v.styles.Muted.Render(ansi.Truncate(tile.Link, linkCells, "…")),
	)
	return strings.Join(lines, "\n")
}
