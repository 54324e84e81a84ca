// Package http provides plain-HTTP implementations of grabdoc services:
// a Fetcher for static sites that render without JavaScript, an
// ArchiveLister that reads publication sitemaps, and a Downloader for
// direct file exports.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/grabdoc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements grabdoc.Fetcher at compile time.
var _ grabdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher it does not execute JavaScript, so client-rendered
// pages arrive empty. It exists for environments without Chrome.
type Fetcher struct {
	client  *http.Client
	cookies grabdoc.CookieSource
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithCookieSource attaches cookies from src to each request, keyed by the
// request URL's domain.
func WithCookieSource(src grabdoc.CookieSource) Option {
	return func(f *Fetcher) {
		f.cookies = src
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	if f.cookies != nil {
		if err := f.attachCookies(ctx, req, rawURL); err != nil {
			return "", err
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// attachCookies adds cookies for the request's domain. A cookie source
// failure fails the fetch: the caller asked for an authenticated session,
// and fetching without it would silently return the logged-out page.
func (f *Fetcher) attachCookies(ctx context.Context, req *http.Request, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return grabdoc.Errorf(grabdoc.EINVALID, "invalid URL: %v", err)
	}

	cookies, err := f.cookies.Cookies(ctx, parsed.Hostname())
	if err != nil {
		return err
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
