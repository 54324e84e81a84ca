package adapter

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fwojciec/grabdoc"
)

// Ensure GoogleDrive implements grabdoc.Adapter.
var _ grabdoc.Adapter = (*GoogleDrive)(nil)

// DownloadsDir is the subdirectory Drive files land in so downloads
// never collide with the article documents in the same directory.
const DownloadsDir = "downloads"

// GoogleDrive downloads Docs, Sheets, Slides, and Drive files through
// Google's direct export endpoints. Folders have no export endpoint and
// are reported as failures rather than half-extracted.
type GoogleDrive struct {
	Downloader grabdoc.Downloader
}

// ResourceType returns "google_drive".
func (g *GoogleDrive) ResourceType() string {
	return grabdoc.TypeGoogleDrive
}

// CanHandle claims drive.google.com and docs.google.com URLs.
func (g *GoogleDrive) CanHandle(url, resourceType string) bool {
	return strings.Contains(url, "drive.google.com") || strings.Contains(url, "docs.google.com")
}

// Extract downloads the exported document into dir/downloads. File paths
// in the result are relative to dir.
func (g *GoogleDrive) Extract(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	if grabdoc.IsDriveFolder(url) {
		return g.failed("Drive folders cannot be downloaded via export URLs"), nil
	}

	exportURL := grabdoc.DriveExportURL(url)
	if exportURL == "" {
		return g.failed("no recognizable document or file ID in URL: " + url), nil
	}

	downloadDir := filepath.Join(dir, DownloadsDir)
	files, err := g.Downloader.Download(ctx, exportURL, downloadDir)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return g.failed(grabdoc.ErrorMessage(err)), nil
	}

	created := make([]string, 0, len(files))
	for _, f := range files {
		if rel, err := filepath.Rel(dir, f); err == nil {
			created = append(created, rel)
		} else {
			created = append(created, f)
		}
	}

	return &grabdoc.ExtractionResult{
		Success:      true,
		ResourceType: grabdoc.TypeGoogleDrive,
		FilesCreated: created,
		Note:         "exported via direct URL",
	}, nil
}

func (g *GoogleDrive) failed(msg string) *grabdoc.ExtractionResult {
	return &grabdoc.ExtractionResult{
		Success:      false,
		ResourceType: grabdoc.TypeGoogleDrive,
		Error:        msg,
	}
}
