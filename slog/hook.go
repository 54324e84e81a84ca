package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/grabdoc"
)

// Ensure LoggingHook implements grabdoc.Hook.
var _ grabdoc.Hook = (*LoggingHook)(nil)

// LoggingHook wraps a Hook with logging of each run.
type LoggingHook struct {
	next   grabdoc.Hook
	logger *slog.Logger
}

// NewLoggingHook creates a new LoggingHook.
func NewLoggingHook(next grabdoc.Hook, logger *slog.Logger) *LoggingHook {
	return &LoggingHook{next: next, logger: logger}
}

// ShouldRun delegates to the wrapped hook.
func (h *LoggingHook) ShouldRun(ctx context.Context, meta *grabdoc.Metadata, dir string) (bool, error) {
	return h.next.ShouldRun(ctx, meta, dir)
}

// Run logs the hook outcome and delegates to the wrapped hook.
func (h *LoggingHook) Run(ctx context.Context, meta *grabdoc.Metadata, dir string) (result *grabdoc.HookResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"dir", dir,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs, "success", result.Success, "files", len(result.FilesCreated))
		}
		h.logger.Info("hook run", attrs...)
	}(time.Now())
	return h.next.Run(ctx, meta, dir)
}
