package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// Ensure LinkActionService implements the interface.
var _ driving.LinkActionService = (*LinkActionService)(nil)

// Link action errors.
var (
	// ErrNoLink is returned when a tile has no usable link.
	ErrNoLink = errors.New("service has no link")

	// ErrUnsupportedLink is returned for links that are not http(s) URLs.
	ErrUnsupportedLink = errors.New("only http and https links can be opened")

	// ErrOpenerUnavailable is returned when no link opener is configured.
	ErrOpenerUnavailable = errors.New("link opener not available")

	// ErrClipboardUnavailable is returned when no clipboard is configured.
	ErrClipboardUnavailable = errors.New("clipboard not available")
)

// LinkActionService opens or copies service links.
type LinkActionService struct {
	opener    driven.LinkOpener
	clipboard driven.Clipboard
}

// NewLinkActionService creates a new link action service.
// Either collaborator may be nil.
func NewLinkActionService(opener driven.LinkOpener, clipboard driven.Clipboard) *LinkActionService {
	return &LinkActionService{
		opener:    opener,
		clipboard: clipboard,
	}
}

// OpenLink opens an http(s) URL in the default browser.
func (s *LinkActionService) OpenLink(link string) error {
	if err := validateLink(link); err != nil {
		return err
	}
	if s.opener == nil {
		return ErrOpenerUnavailable
	}

	logger.Debug("opening %s", link)
	if err := s.opener.Open(link); err != nil {
		return fmt.Errorf("opening link: %w", err)
	}
	return nil
}

// CopyLink copies a URL to the clipboard.
func (s *LinkActionService) CopyLink(link string) error {
	if link == "" || link == fallbackLink {
		return ErrNoLink
	}
	if s.clipboard == nil {
		return ErrClipboardUnavailable
	}

	if err := s.clipboard.WriteAll(link); err != nil {
		return fmt.Errorf("copying link: %w", err)
	}
	return nil
}

func validateLink(link string) error {
	if link == "" || link == fallbackLink {
		return ErrNoLink
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("parsing link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrUnsupportedLink
	}
	return nil
}
