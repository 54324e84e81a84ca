package grabdoc

import (
	"context"
	"time"
)

// Extraction is one recorded extraction run. The history ledger persists
// these so repeat invocations can skip URLs that were already extracted.
type Extraction struct {
	ID           string
	URL          string
	ResourceType string
	OutputDir    string
	ContentHash  string
	Success      bool
	CreatedAt    time.Time
}

// Validate returns EINVALID if required fields are missing.
func (e *Extraction) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "extraction URL required")
	}
	if e.OutputDir == "" {
		return Errorf(EINVALID, "extraction output directory required")
	}
	return nil
}

// ExtractionFilter narrows FindExtractions queries. Nil fields match
// everything.
type ExtractionFilter struct {
	ID      *string
	URL     *string
	Success *bool

	Limit  int
	Offset int
}

// HistoryService records completed extractions and answers whether a URL
// has been extracted before.
type HistoryService interface {
	// CreateExtraction persists a new extraction record, assigning its ID
	// and creation time.
	CreateExtraction(ctx context.Context, e *Extraction) error

	// FindExtractionByURL returns the most recent extraction of url, or an
	// ENOTFOUND error when the URL has never been extracted.
	FindExtractionByURL(ctx context.Context, url string) (*Extraction, error)

	// FindExtractions returns extractions matching the filter, most recent
	// first.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)
}
