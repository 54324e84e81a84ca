package mock

import (
	"context"
	"time"

	"github.com/fwojciec/grabdoc"
)

var _ grabdoc.ArchiveLister = (*ArchiveLister)(nil)

// ArchiveLister is a mock implementation of grabdoc.ArchiveLister.
type ArchiveLister struct {
	ListArticlesFn func(ctx context.Context, baseURL string, since time.Time) ([]grabdoc.ArchiveEntry, error)
}

func (l *ArchiveLister) ListArticles(ctx context.Context, baseURL string, since time.Time) ([]grabdoc.ArchiveEntry, error) {
	return l.ListArticlesFn(ctx, baseURL, since)
}
