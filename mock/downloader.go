package mock

import (
	"context"

	"github.com/fwojciec/grabdoc"
)

var _ grabdoc.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of grabdoc.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url, dir string) ([]string, error)
}

func (d *Downloader) Download(ctx context.Context, url, dir string) ([]string, error) {
	return d.DownloadFn(ctx, url, dir)
}
