package grid

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Block is one section of rendered tiles with an optional header.
type Block struct {
	Header string
	Tiles  []string
}

// Span is the line range [Top, Bottom) a row of tiles occupies.
type Span struct {
	Top    int
	Bottom int
}

// Layout joins rendered tiles into rows of columns and returns the content
// together with the line span of every row, in row order.
func Layout(blocks []Block, columns int) (string, []Span) {
	if columns < 1 {
		columns = 1
	}

	var (
		parts []string
		spans []Span
		line  int
	)

	for i, block := range blocks {
		if i > 0 {
			parts = append(parts, "")
			line++
		}
		if block.Header != "" {
			parts = append(parts, block.Header)
			line += lipgloss.Height(block.Header)
		}
		for start := 0; start < len(block.Tiles); start += columns {
			end := start + columns
			if end > len(block.Tiles) {
				end = len(block.Tiles)
			}
			row := joinRow(block.Tiles[start:end])
			height := lipgloss.Height(row)
			parts = append(parts, row)
			spans = append(spans, Span{Top: line, Bottom: line + height})
			line += height
		}
	}

	return strings.Join(parts, "\n"), spans
}

func joinRow(tiles []string) string {
	if len(tiles) == 1 {
		return tiles[0]
	}
	gap := strings.Repeat(" ", Gap)
	cells := make([]string, 0, len(tiles)*2-1)
	for i, tile := range tiles {
		if i > 0 {
			cells = append(cells, gap)
		}
		cells = append(cells, tile)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Follow scrolls vp so that span is visible. A span taller than the
// viewport is aligned to its top.
func Follow(vp *viewport.Model, span Span) {
	switch {
	case span.Top < vp.YOffset:
		vp.SetYOffset(span.Top)
	case span.Bottom > vp.YOffset+vp.Height:
		offset := span.Bottom - vp.Height
		if offset > span.Top {
			offset = span.Top
		}
		vp.SetYOffset(offset)
	}
}
