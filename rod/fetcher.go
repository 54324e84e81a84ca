// Package rod fetches rendered HTML through headless Chrome. Newsletter
// platforms, Notion, and Medium all assemble their pages client-side, so
// a plain HTTP GET sees skeletons; this fetcher waits for the render,
// scrolls lazy content into existence, and inline-hides subscribe
// overlays before snapshotting the DOM.
package rod

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/grabdoc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements grabdoc.Fetcher at compile time.
var _ grabdoc.Fetcher = (*Fetcher)(nil)

// DefaultRenderDelay is how long a page gets to settle after load before
// the DOM is read.
const DefaultRenderDelay = 2 * time.Second

// DefaultScrollPasses is how many viewport scrolls run before the
// snapshot so lazily rendered blocks are present.
const DefaultScrollPasses = 2

// scrollSettle is the pause after each scroll pass.
const scrollSettle = 500 * time.Millisecond

// dismissOverlaysJS inline-hides subscribe modals and paywall overlays
// and clicks close buttons. Hiding rather than removing keeps the
// elements in the snapshot for paywall detection.
const dismissOverlaysJS = `() => {
	const overlays = document.querySelectorAll(
		'[class*="modal"], [class*="overlay"], [class*="paywall"], [class*="subscribe-prompt"]'
	);
	overlays.forEach(el => { if (el.style) el.style.display = 'none'; });
	const closeBtns = document.querySelectorAll(
		'button[aria-label="Close"], [class*="modal"] button, [class*="dismiss"]'
	);
	closeBtns.forEach(btn => { try { btn.click(); } catch (e) {} });
}`

// scrollJS scrolls one document height down.
const scrollJS = `() => window.scrollBy(0, document.documentElement.scrollHeight)`

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	cookies      grabdoc.CookieSource
	renderDelay  time.Duration
	scrollPasses int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRenderDelay sets the post-load settle time before the DOM is read.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithScrollPasses sets how many scroll passes run before the snapshot.
func WithScrollPasses(n int) Option {
	return func(f *Fetcher) {
		f.scrollPasses = n
	}
}

// WithCookieSource injects cookies for the target domain before
// navigation, so extractions reuse existing signed-in sessions.
func WithCookieSource(src grabdoc.CookieSource) Option {
	return func(f *Fetcher) {
		f.cookies = src
	}
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager:      manager,
		renderDelay:  DefaultRenderDelay,
		scrollPasses: DefaultScrollPasses,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.cookies != nil {
		if err := f.injectCookies(ctx, page, pageURL); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(pageURL); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if err := sleep(ctx, f.renderDelay); err != nil {
		return "", err
	}

	for i := 0; i < f.scrollPasses; i++ {
		if _, err := page.Eval(scrollJS); err != nil {
			break
		}
		if err := sleep(ctx, scrollSettle); err != nil {
			return "", err
		}
	}

	// Best effort; a page without overlays has nothing to dismiss.
	_, _ = page.Eval(dismissOverlaysJS)

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher. It exists
// for tests verifying process cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// injectCookies loads cookies for the page's domain and sets them on the
// page before navigation.
func (f *Fetcher) injectCookies(ctx context.Context, page *rod.Page, pageURL string) error {
	u, err := url.Parse(pageURL)
	if err != nil {
		return grabdoc.Errorf(grabdoc.EINVALID, "invalid URL: %v", err)
	}

	cookies, err := f.cookies.Cookies(ctx, u.Hostname())
	if err != nil {
		return err
	}
	if len(cookies) == 0 {
		return nil
	}

	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		domain := c.Domain
		if domain == "" {
			domain = u.Hostname()
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		param := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   domain,
			Path:     path,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		}
		if !c.Expires.IsZero() {
			param.Expires = proto.TimeSinceEpoch(c.Expires.Unix())
		}
		params = append(params, param)
	}

	return page.SetCookies(params)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
