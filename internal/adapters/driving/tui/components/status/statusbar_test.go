package status

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilParams(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	assert.Nil(t, NewBar(nil, nil).Init())
}

func TestStatusBar_Update_IgnoresKeys(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_Loading(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.StartLoading()
	require.NotNil(t, cmd)
	assert.Equal(t, StateLoading, bar.State())
	assert.Contains(t, bar.View(), "読み込み中")

	tick, ok := cmd().(spinner.TickMsg)
	require.True(t, ok)
	_, next := bar.Update(tick)
	assert.NotNil(t, next)

	bar.Clear()
	_, next = bar.Update(tick)
	assert.Nil(t, next)
}

func TestStatusBar_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetError(errors.New("clipboard unavailable"))

	assert.Equal(t, StateError, bar.State())
	assert.Contains(t, bar.View(), "Error: clipboard unavailable")

	bar.SetError(nil)
	assert.Contains(t, bar.View(), "Error")
}

func TestStatusBar_NoticeAndSummary(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetSummary("12 カテゴリ")

	assert.Contains(t, bar.View(), "12 カテゴリ")

	bar.SetNotice("リンクをコピーしました")
	assert.Contains(t, bar.View(), "リンクをコピーしました")

	bar.Clear()
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "12 カテゴリ", bar.Summary())
}

func TestStatusBar_Bindings(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(160)

	bar.SetBindings(km.ServicesHelp())

	view := bar.View()
	assert.Contains(t, view, "flip")
	assert.Contains(t, view, "open link")
}
