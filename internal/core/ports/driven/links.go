package driven

// LinkOpener opens an outbound URL outside the application.
type LinkOpener interface {
	// Open launches the URL in the platform's default handler.
	Open(url string) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	// WriteAll replaces the clipboard contents with text.
	WriteAll(text string) error
}
