package mock

import (
	"context"

	"github.com/fwojciec/grabdoc"
)

var _ grabdoc.Adapter = (*Adapter)(nil)

// Adapter is a mock implementation of grabdoc.Adapter.
type Adapter struct {
	ResourceTypeFn func() string
	CanHandleFn    func(url, resourceType string) bool
	ExtractFn      func(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error)
}

func (a *Adapter) ResourceType() string {
	return a.ResourceTypeFn()
}

func (a *Adapter) CanHandle(url, resourceType string) bool {
	return a.CanHandleFn(url, resourceType)
}

func (a *Adapter) Extract(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	return a.ExtractFn(ctx, url, linkText, dir)
}
