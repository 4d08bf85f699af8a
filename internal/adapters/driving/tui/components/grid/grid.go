// Package grid provides cursor navigation over tile grids for the TUI.
package grid

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/keymap"
)

// Gap is the horizontal space between tiles.
const Gap = 1

// Grid tracks a cursor over tiles laid out in sections. Each section starts
// on a new row; positions run across sections in display order.
type Grid struct {
	keymap  *keymap.KeyMap
	rows    [][]int
	count   int
	columns int
	cursor  int
}

// New creates an empty grid.
func New(km *keymap.KeyMap) *Grid {
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Grid{keymap: km, columns: 1}
}

// ColumnsFor returns how many tiles of tileWidth fit in width.
func ColumnsFor(width, tileWidth int) int {
	if tileWidth <= 0 {
		return 1
	}
	cols := (width + Gap) / (tileWidth + Gap)
	if cols < 1 {
		return 1
	}
	return cols
}

// SetLayout lays out sections of the given sizes in rows of columns tiles.
// The cursor is kept when still in range.
func (g *Grid) SetLayout(sectionSizes []int, columns int) {
	if columns < 1 {
		columns = 1
	}
	g.columns = columns
	g.rows = g.rows[:0]
	g.count = 0

	for _, size := range sectionSizes {
		for start := 0; start < size; start += columns {
			end := start + columns
			if end > size {
				end = size
			}
			row := make([]int, 0, end-start)
			for i := start; i < end; i++ {
				row = append(row, g.count+i)
			}
			g.rows = append(g.rows, row)
		}
		g.count += size
	}

	if g.cursor >= g.count {
		g.cursor = g.count - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

// Update moves the cursor on navigation keys.
func (g *Grid) Update(msg tea.Msg) (*Grid, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}
	switch {
	case key.Matches(keyMsg, g.keymap.Up):
		g.MoveUp()
	case key.Matches(keyMsg, g.keymap.Down):
		g.MoveDown()
	case key.Matches(keyMsg, g.keymap.Left):
		g.MoveLeft()
	case key.Matches(keyMsg, g.keymap.Right):
		g.MoveRight()
	}
	return g, nil
}

// MoveLeft moves to the previous position.
func (g *Grid) MoveLeft() {
	if g.cursor > 0 {
		g.cursor--
	}
}

// MoveRight moves to the next position.
func (g *Grid) MoveRight() {
	if g.cursor < g.count-1 {
		g.cursor++
	}
}

// MoveUp moves to the same column of the previous row, or its last tile
// when that row is shorter.
func (g *Grid) MoveUp() {
	row, col := g.locate()
	if row <= 0 {
		return
	}
	g.cursor = pick(g.rows[row-1], col)
}

// MoveDown moves to the same column of the next row, or its last tile
// when that row is shorter.
func (g *Grid) MoveDown() {
	row, col := g.locate()
	if row < 0 || row >= len(g.rows)-1 {
		return
	}
	g.cursor = pick(g.rows[row+1], col)
}

// Cursor returns the selected position, or -1 when the grid is empty.
func (g *Grid) Cursor() int {
	if g.count == 0 {
		return -1
	}
	return g.cursor
}

// SetCursor selects position if it is in range.
func (g *Grid) SetCursor(position int) {
	if position >= 0 && position < g.count {
		g.cursor = position
	}
}

// Reset moves the cursor to the first tile.
func (g *Grid) Reset() {
	g.cursor = 0
}

// Count returns the number of tiles.
func (g *Grid) Count() int {
	return g.count
}

// Columns returns the tiles per row.
func (g *Grid) Columns() int {
	return g.columns
}

// Row returns the row index holding the cursor, or -1 when empty.
func (g *Grid) Row() int {
	row, _ := g.locate()
	return row
}

func (g *Grid) locate() (row, col int) {
	for r, positions := range g.rows {
		for c, p := range positions {
			if p == g.cursor {
				return r, c
			}
		}
	}
	return -1, -1
}

func pick(row []int, col int) int {
	if col >= len(row) {
		col = len(row) - 1
	}
	return row[col]
}
