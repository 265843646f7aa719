package replygen

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations follow redirects, send browser-like headers and bound
// every request with a timeout.
type Fetcher interface {
	// Fetch retrieves the markup for url.
	// The context controls timeout and cancellation. Implementations
	// report ETIMEOUT when the deadline passes and EFETCH otherwise.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases pooled connections or browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
