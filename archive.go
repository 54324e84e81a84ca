package grabdoc

import (
	"context"
	"time"
)

// ArchiveEntry is one article discovered in a publication's archive.
type ArchiveEntry struct {
	URL     string
	LastMod time.Time
}

// ArchiveLister discovers the article URLs of a newsletter publication,
// typically from its sitemap. Entries older than since are omitted when
// since is non-zero; entries without a last-modified date are kept.
type ArchiveLister interface {
	ListArticles(ctx context.Context, baseURL string, since time.Time) ([]ArchiveEntry, error)
}
