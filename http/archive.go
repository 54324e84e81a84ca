package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"

	"github.com/fwojciec/grabdoc"
)

// articlePathPrefix is the path under which newsletter platforms publish
// posts; everything else in the sitemap (about, archive, podcast feeds) is
// publication chrome.
const articlePathPrefix = "/p/"

// Ensure ArchiveLister implements grabdoc.ArchiveLister.
var _ grabdoc.ArchiveLister = (*ArchiveLister)(nil)

// ArchiveLister discovers a publication's article URLs from its sitemap,
// located via robots.txt with a /sitemap.xml fallback.
type ArchiveLister struct {
	client *http.Client
}

// NewArchiveLister creates a new ArchiveLister with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewArchiveLister(client *http.Client) *ArchiveLister {
	if client == nil {
		client = http.DefaultClient
	}
	return &ArchiveLister{client: client}
}

// ListArticles finds the publication's article URLs. Entries are ordered
// newest first where the sitemap carries lastmod dates; undated entries
// keep sitemap order at the end. When since is non-zero, dated entries
// older than it are dropped; undated entries are kept.
// Returns an empty slice (not nil) if no sitemaps are found.
func (l *ArchiveLister) ListArticles(ctx context.Context, baseURL string, since time.Time) ([]grabdoc.ArchiveEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "invalid base URL: %v", err)
	}

	// Sitemap discovery always starts at the domain root.
	sitemapBase := *base
	sitemapBase.Path = ""

	sitemapURLs, err := l.findSitemapURLs(ctx, &sitemapBase)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []grabdoc.ArchiveEntry{}, nil
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	entries := []grabdoc.ArchiveEntry{}

	for _, sitemapURL := range sitemapURLs {
		locs, err := l.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, loc := range locs {
			if seenURLs[loc.url] {
				continue
			}
			seenURLs[loc.url] = true

			if !isArticleURL(loc.url, base.Hostname()) {
				continue
			}

			entry := grabdoc.ArchiveEntry{URL: loc.url, LastMod: parseLastMod(loc.lastMod)}
			if !since.IsZero() && !entry.LastMod.IsZero() && entry.LastMod.Before(since) {
				continue
			}
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].LastMod.IsZero() || entries[j].LastMod.IsZero() {
			return false
		}
		return entries[i].LastMod.After(entries[j].LastMod)
	})

	return entries, nil
}

// isArticleURL reports whether a sitemap URL is one of the publication's
// own article pages.
func isArticleURL(rawURL, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Hostname() == host && strings.HasPrefix(parsed.Path, articlePathPrefix)
}

// parseLastMod parses a sitemap lastmod value. Sitemaps in the wild carry
// anything from bare dates to RFC 3339 timestamps; unparseable values
// yield the zero time, which keeps the entry.
func parseLastMod(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// sitemapLoc is one <url> element's loc and optional lastmod.
type sitemapLoc struct {
	url     string
	lastMod string
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to /sitemap.xml.
func (l *ArchiveLister) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := l.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := l.urlExists(ctx, sitemapURL.String())
	if err != nil {
		// Propagate context errors, treat other errors as "not found"
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL.String()}, nil
	}

	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (l *ArchiveLister) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := l.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (l *ArchiveLister) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]sitemapLoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := l.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		return l.processSitemapIndex(ctx, root, seen)
	}

	return parseURLSet(root), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (l *ArchiveLister) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]sitemapLoc, error) {
	var all []sitemapLoc

	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" {
			continue
		}

		locs, err := l.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, locs...)
	}

	return all, nil
}

// parseURLSet extracts loc and lastmod pairs from a <urlset> element.
func parseURLSet(root *etree.Element) []sitemapLoc {
	var locs []sitemapLoc
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" {
			continue
		}

		var lastMod string
		if lm := urlEl.SelectElement("lastmod"); lm != nil {
			lastMod = strings.TrimSpace(lm.Text())
		}
		locs = append(locs, sitemapLoc{url: u, lastMod: lastMod})
	}
	return locs
}

// fetchURL fetches a URL and returns the response body.
func (l *ArchiveLister) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (l *ArchiveLister) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
