// Package clipboard writes to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is installed.
var ErrUnsupported = errors.New("clipboard unavailable (install xclip, xsel or wl-clipboard)")

// System is the OS clipboard.
type System struct{}

// New returns the system clipboard, or nil if the platform has none.
func New() *System {
	if clipboard.Unsupported {
		return nil
	}
	return &System{}
}

// WriteAll replaces the clipboard contents with text.
func (*System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
