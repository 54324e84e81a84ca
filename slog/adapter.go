package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/grabdoc"
)

// Ensure LoggingAdapter implements grabdoc.Adapter.
var _ grabdoc.Adapter = (*LoggingAdapter)(nil)

// LoggingAdapter wraps an Adapter with logging of each extraction.
type LoggingAdapter struct {
	next   grabdoc.Adapter
	logger *slog.Logger
}

// NewLoggingAdapter creates a new LoggingAdapter.
func NewLoggingAdapter(next grabdoc.Adapter, logger *slog.Logger) *LoggingAdapter {
	return &LoggingAdapter{next: next, logger: logger}
}

// ResourceType delegates to the wrapped adapter.
func (a *LoggingAdapter) ResourceType() string {
	return a.next.ResourceType()
}

// CanHandle delegates to the wrapped adapter.
func (a *LoggingAdapter) CanHandle(url, resourceType string) bool {
	return a.next.CanHandle(url, resourceType)
}

// Extract logs the extraction outcome and delegates to the wrapped adapter.
func (a *LoggingAdapter) Extract(ctx context.Context, url, linkText, dir string) (result *grabdoc.ExtractionResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"resource_type", a.next.ResourceType(),
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs, "success", result.Success, "files", len(result.FilesCreated))
		}
		a.logger.Info("extract", attrs...)
	}(time.Now())
	return a.next.Extract(ctx, url, linkText, dir)
}
