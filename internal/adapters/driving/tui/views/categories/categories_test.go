package categories

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

func sampleScreen() domain.Screen {
	return domain.Screen{
		View:  domain.ViewCategoryList,
		Title: "カテゴリ一覧",
		CategoryTiles: []domain.CategoryTile{
			{Index: 0, Key: "compute", Name: "Compute", Description: "VMs and containers", ServiceCount: 3, Badge: "3 サービス"},
			{Index: 1, Key: "storage", Name: "Storage", ServiceCount: 2, Badge: "2 サービス"},
			{Index: 2, Key: "2", Name: "AI", ServiceCount: 0, Badge: "0 サービス"},
		},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, -1, view.Selected())
	assert.Nil(t, view.Init())
}

func TestView_RendersTiles(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(100, 40)
	view.SetScreen(sampleScreen())

	out := view.View()

	assert.Contains(t, out, "カテゴリ一覧")
	assert.Contains(t, out, "Compute")
	assert.Contains(t, out, "VMs and containers")
	assert.Contains(t, out, "3 サービス")
	assert.Contains(t, out, "0 サービス")
	assert.True(t, view.Ready())
}

func TestView_Placeholder(t *testing.T) {
	view := NewView(nil, nil)
	view.SetScreen(domain.Screen{Title: "カテゴリ一覧", Placeholder: "表示できるカテゴリがありません。"})

	assert.Contains(t, view.View(), "表示できるカテゴリがありません。")
	_, ok := view.SelectedTile()
	assert.False(t, ok)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView_NavigateAndSelect(t *testing.T) {
	view := NewView(nil, nil)
	// 100 columns fit three tiles
	view.SetDimensions(100, 40)
	view.SetScreen(sampleScreen())

	view, _ = view.Update(keyRune('l'))
	view, _ = view.Update(keyRune('l'))
	assert.Equal(t, 2, view.Selected())

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyLeft})
	tile, ok := view.SelectedTile()
	require.True(t, ok)
	assert.Equal(t, "Storage", tile.Name)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.CategorySelected{Index: 1}, cmd())
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(40, 40)
	view.SetScreen(sampleScreen())

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected(), "one column per row at this width")

	view.Reset()
	assert.Equal(t, 0, view.Selected())
}

func TestView_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	view, cmd := view.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
	assert.Equal(t, 120, view.width)
}
