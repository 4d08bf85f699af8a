// Package categories provides the category grid view for the TUI.
package categories

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

// descriptionCells caps the description shown on a tile.
const descriptionCells = 3 * (styles.TileWidth - 4)

// View is the category grid.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	grid     *grid.Grid
	viewport viewport.Model
	spans    []grid.Span

	screen domain.Screen
	width  int
	height int
	ready  bool
}

// NewView creates a new category grid view.
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
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetScreen replaces the rendered category list.
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

// Update handles messages for the category view.
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
	if key.Matches(msg, v.keymap.Select) {
		tile, ok := v.SelectedTile()
		if !ok {
			return v, nil
		}
		index := tile.Index
		return v, func() tea.Msg {
			return messages.CategorySelected{Index: index}
		}
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

// View renders the category grid.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.screen.Title))
	b.WriteString("\n\n")

	if v.screen.Placeholder != "" {
		b.WriteString(v.styles.Muted.Render(v.screen.Placeholder))
		return b.String()
	}

	b.WriteString(v.viewport.View())
	return b.String()
}

// SelectedTile returns the tile under the cursor.
func (v *View) SelectedTile() (domain.CategoryTile, bool) {
	cursor := v.grid.Cursor()
	if cursor < 0 || cursor >= len(v.screen.CategoryTiles) {
		return domain.CategoryTile{}, false
	}
	return v.screen.CategoryTiles[cursor], true
}

// Selected returns the cursor position, or -1 when there are no tiles.
func (v *View) Selected() int {
	return v.grid.Cursor()
}

// SetDimensions sets the view dimensions. Two lines are reserved for the
// title and one for the status bar.
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
	v.grid.SetLayout([]int{len(v.screen.CategoryTiles)}, grid.ColumnsFor(v.width, styles.TileWidth))
	v.render()
}

func (v *View) render() {
	tiles := make([]string, len(v.screen.CategoryTiles))
	for i := range v.screen.CategoryTiles {
		tiles[i] = v.renderTile(&v.screen.CategoryTiles[i], i == v.grid.Cursor())
	}

	content, spans := grid.Layout([]grid.Block{{Tiles: tiles}}, v.grid.Columns())
	v.spans = spans
	v.viewport.SetContent(content)

	if row := v.grid.Row(); row >= 0 && row < len(spans) {
		grid.Follow(&v.viewport, spans[row])
	}
}

func (v *View) renderTile(tile *domain.CategoryTile, selected bool) string {
	lines := []string{v.styles.TileName.Render(tile.Name)}
	if tile.Description != "" {
		lines = append(lines, v.styles.Muted.Render(ansi.Truncate(tile.Description, descriptionCells, "…")))
	}
	lines = append(lines, v.styles.Badge.Render(tile.Badge))

	style := v.styles.Tile
	if selected {
		style = v.styles.TileSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}
