package mock

import (
	"context"

	"github.com/fwojciec/grabdoc"
)

var _ grabdoc.Hook = (*Hook)(nil)

// Hook is a mock implementation of grabdoc.Hook.
type Hook struct {
	ShouldRunFn func(ctx context.Context, meta *grabdoc.Metadata, dir string) (bool, error)
	RunFn       func(ctx context.Context, meta *grabdoc.Metadata, dir string) (*grabdoc.HookResult, error)
}

func (h *Hook) ShouldRun(ctx context.Context, meta *grabdoc.Metadata, dir string) (bool, error) {
	return h.ShouldRunFn(ctx, meta, dir)
}

func (h *Hook) Run(ctx context.Context, meta *grabdoc.Metadata, dir string) (*grabdoc.HookResult, error) {
	return h.RunFn(ctx, meta, dir)
}
