// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back returns to the category list.
	Back key.Binding

	// Up, Down, Left and Right move the tile cursor.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Select opens a category or flips a service tile.
	Select key.Binding

	// Flip flips a service tile.
	Flip key.Binding

	// Open opens the selected service's link in the browser.
	Open key.Binding

	// Copy copies the selected service's link to the clipboard.
	Copy key.Binding

	// Reload fetches the datasets again.
	Reload key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Flip: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "flip"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open link"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns the keybindings shown in the status bar.
// It implements help.KeyMap.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.Help, k.Quit}
}

// CategoriesHelp returns keybindings for the category grid.
func (k *KeyMap) CategoriesHelp() []key.Binding {
	return []key.Binding{k.Select, k.Reload, k.Help, k.Quit}
}

// ServicesHelp returns keybindings for the service grid.
func (k *KeyMap) ServicesHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Open, k.Copy, k.Back, k.Quit}
}

// LoadErrorHelp returns keybindings for the load-error screen.
func (k *KeyMap) LoadErrorHelp() []key.Binding {
	return []key.Binding{k.Reload, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
// It implements help.KeyMap.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Flip, k.Back},
		{k.Open, k.Copy, k.Reload},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
