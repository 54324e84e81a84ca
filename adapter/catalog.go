package adapter

import (
	"context"
	"strings"

	"github.com/fwojciec/grabdoc"
)

// Ensure Catalog implements grabdoc.Adapter.
var _ grabdoc.Adapter = (*Catalog)(nil)

// Catalog is the last-resort adapter: it extracts nothing and records
// the resource in metadata so the link is never silently lost. It always
// matches, which is what makes Registry.Get total in the default build.
type Catalog struct{}

// ResourceType returns "catalog".
func (c *Catalog) ResourceType() string {
	return grabdoc.TypeCatalog
}

// CanHandle always returns true.
func (c *Catalog) CanHandle(url, resourceType string) bool {
	return true
}

// Extract creates no files; it infers the resource type from the URL and
// notes that the resource was catalogued only.
func (c *Catalog) Extract(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	resourceType := grabdoc.TypeExternal
	switch {
	case strings.Contains(url, "youtu"):
		resourceType = grabdoc.TypeYouTube
	case strings.Contains(url, "notion"):
		resourceType = grabdoc.TypeNotion
	case strings.Contains(url, "drive.google") || strings.Contains(url, "docs.google"):
		resourceType = grabdoc.TypeGoogleDrive
	}

	return &grabdoc.ExtractionResult{
		Success:      true,
		ResourceType: resourceType,
		FilesCreated: []string{},
		Note:         "Catalogued only",
	}, nil
}
