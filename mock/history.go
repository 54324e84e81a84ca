package mock

import (
	"context"

	"github.com/fwojciec/grabdoc"
)

var _ grabdoc.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of grabdoc.HistoryService.
type HistoryService struct {
	CreateExtractionFn    func(ctx context.Context, ext *grabdoc.Extraction) error
	FindExtractionByURLFn func(ctx context.Context, url string) (*grabdoc.Extraction, error)
	FindExtractionsFn     func(ctx context.Context, filter grabdoc.ExtractionFilter) ([]*grabdoc.Extraction, error)
}

func (s *HistoryService) CreateExtraction(ctx context.Context, ext *grabdoc.Extraction) error {
	return s.CreateExtractionFn(ctx, ext)
}

func (s *HistoryService) FindExtractionByURL(ctx context.Context, url string) (*grabdoc.Extraction, error) {
	return s.FindExtractionByURLFn(ctx, url)
}

func (s *HistoryService) FindExtractions(ctx context.Context, filter grabdoc.ExtractionFilter) ([]*grabdoc.Extraction, error) {
	return s.FindExtractionsFn(ctx, filter)
}
