package mock

import (
	"context"

	"github.com/fwojciec/grabdoc"
)

var _ grabdoc.VideoService = (*VideoService)(nil)

// VideoService is a mock implementation of grabdoc.VideoService.
type VideoService struct {
	ProbeFn      func(ctx context.Context) error
	FetchVideoFn func(ctx context.Context, url, dir string) (*grabdoc.Video, error)
	ListVideosFn func(ctx context.Context, url, dateAfter string) ([]grabdoc.VideoEntry, error)
}

func (s *VideoService) Probe(ctx context.Context) error {
	return s.ProbeFn(ctx)
}

func (s *VideoService) FetchVideo(ctx context.Context, url, dir string) (*grabdoc.Video, error) {
	return s.FetchVideoFn(ctx, url, dir)
}

func (s *VideoService) ListVideos(ctx context.Context, url, dateAfter string) ([]grabdoc.VideoEntry, error) {
	return s.ListVideosFn(ctx, url, dateAfter)
}
