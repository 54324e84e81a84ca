package grabdoc

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation so JavaScript-rendered pages
// (newsletters, Notion, Medium) arrive fully populated.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and
	// returns the rendered HTML. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Downloader saves the resource at url into dir and returns the paths of
// the files it created. Archives may be expanded into multiple files.
type Downloader interface {
	Download(ctx context.Context, url, dir string) ([]string, error)
}
