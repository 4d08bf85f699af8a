package driving

// LinkActionService provides actions on a service tile's outbound link.
// Activating a link never changes which tile is flipped.
type LinkActionService interface {
	// OpenLink opens the URL in the default browser.
	OpenLink(url string) error

	// CopyLink copies the URL to the system clipboard.
	CopyLink(url string) error
}
