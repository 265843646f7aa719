// Package rod implements replygen.Fetcher with a headless Chrome browser,
// for pages whose post markup is rendered by JavaScript.
package rod

import (
	"context"
	"errors"
	"time"

	"github.com/IvanM-GM/replygen"
)

// PostSelector marks a rendered post.
const PostSelector = `article [data-testid="tweetText"], meta[property="og:description"]`

const (
	// DefaultMaxPages is the number of pages a browser serves before it is relaunched.
	DefaultMaxPages = 75

	// DefaultSettleTimeout bounds the wait for the post markup after load.
	DefaultSettleTimeout = 5 * time.Second
)

// Options configures a Fetcher and the browser behind it.
type Options struct {
	// MaxPages bounds Chrome's memory growth by relaunching it after this
	// many pages. Zero means DefaultMaxPages.
	MaxPages int

	// SettleTimeout bounds the wait for WaitSelector after the load event.
	// Zero means DefaultSettleTimeout; negative disables the wait.
	SettleTimeout time.Duration

	// WaitSelector is the markup Fetch waits for. Empty means PostSelector.
	WaitSelector string

	// UserAgent overrides Chrome's default user agent.
	UserAgent string

	// Bin is the Chrome executable. Empty lets the launcher find or
	// download one.
	Bin string
}

func (o Options) withDefaults() Options {
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	if o.SettleTimeout == 0 {
		o.SettleTimeout = DefaultSettleTimeout
	}
	if o.WaitSelector == "" {
		o.WaitSelector = PostSelector
	}
	return o
}

// Ensure Fetcher implements replygen.Fetcher at compile time.
var _ replygen.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	opts    Options
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts Options) (*Fetcher, error) {
	opts = opts.withDefaults()
	manager, err := NewBrowserManager(opts)
	if err != nil {
		return nil, replygen.Errorf(replygen.EFETCH, "browser unavailable: %v", err)
	}
	return &Fetcher{manager: manager, opts: opts}, nil
}

// Fetch navigates to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", tagError(err, url)
	}

	page, release, err := f.manager.Page(ctx)
	if err != nil {
		return "", tagError(err, url)
	}
	defer release()

	if err := page.Navigate(url); err != nil {
		return "", tagError(err, url)
	}
	if err := page.WaitLoad(); err != nil {
		return "", tagError(err, url)
	}

	if f.opts.SettleTimeout > 0 {
		// Missing markup is left to the extractor to report.
		_, _ = page.Timeout(f.opts.SettleTimeout).Element(f.opts.WaitSelector)
	}

	html, err := page.HTML()
	if err != nil {
		return "", tagError(err, url)
	}
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// tagError classifies a browser error as ETIMEOUT or EFETCH.
func tagError(err error, url string) error {
	if replygen.IsTagged(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return replygen.Errorf(replygen.ETIMEOUT, "fetching %s timed out", url)
	}
	return replygen.Errorf(replygen.EFETCH, "failed to fetch %s: %v", url, err)
}
