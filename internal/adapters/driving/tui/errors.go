package tui

import "errors"

// ErrMissingBrowser is returned when the catalog browser is not provided.
var ErrMissingBrowser = errors.New("tui: catalog browser is required")

// ErrNoLink is reported when the selected tile has no usable link.
var ErrNoLink = errors.New("このサービスにはリンクがありません")

// ErrLinksUnavailable is reported when no link action service is configured.
var ErrLinksUnavailable = errors.New("link actions are not available")
