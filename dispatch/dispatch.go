// Package dispatch provides linked-resource fan-out for extracted
// articles. It resolves an adapter for each link discovered during
// extraction and invokes it, deduplicating by URL.
package dispatch

import (
	"context"
	"net/url"

	"github.com/fwojciec/grabdoc"
)

// ProgressEvent reports progress during resource dispatch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Err       error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting dispatch progress.
type ProgressFunc func(event ProgressEvent)

// Dispatcher extracts the resources linked from an article. Links are
// processed sequentially in discovery order; a failure on one link is
// recorded in its result and does not stop the remaining links.
type Dispatcher struct {
	Registry *grabdoc.Registry
	Limiter  grabdoc.DomainLimiter
}

// DispatchResources extracts every distinct linked resource recorded in
// meta. Deduplication is by URL with first occurrence winning: a later
// duplicate link is silently dropped even when its link text differs.
// Links with an empty URL are skipped. Results are returned in dispatch
// order.
//
// Adapters receive articleDir as their working directory and are
// responsible for their own output placement inside or alongside it; the
// dispatcher does not create, isolate, or roll back directories.
//
// The progress callback, if provided, receives a Started event whose
// Total counts the links worth announcing (everything except plain
// external links and YouTube videos, which are catalogued rather than
// fetched), then one Completed or Failed event per dispatched link.
//
// Dispatch stops early only when ctx is canceled; the results collected
// so far are returned along with the context error.
func (d *Dispatcher) DispatchResources(ctx context.Context, meta *grabdoc.Metadata, articleDir string, progress ProgressFunc) ([]*grabdoc.ExtractionResult, error) {
	if meta == nil || len(meta.Links) == 0 {
		return nil, nil
	}

	var total int
	for _, link := range meta.Links {
		if link.ResourceType != grabdoc.TypeExternal && link.ResourceType != grabdoc.TypeYouTube {
			total++
		}
	}
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	seen := make(map[string]struct{}, len(meta.Links))
	var results []*grabdoc.ExtractionResult
	var completed int

	for _, link := range meta.Links {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if link.URL == "" {
			continue
		}
		if _, ok := seen[link.URL]; ok {
			continue
		}
		seen[link.URL] = struct{}{}

		resourceType := link.ResourceType
		if resourceType == "" {
			resourceType = grabdoc.TypeExternal
		}

		result := d.dispatchLink(ctx, link.URL, link.LinkText, resourceType, articleDir)
		completed++
		results = append(results, result)

		if progress != nil {
			event := ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: link.URL}
			if !result.Success {
				event.Type = ProgressFailed
			}
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	}

	return results, nil
}

// dispatchLink resolves and invokes one adapter, converting any failure
// into a failed result so the caller's loop keeps going.
func (d *Dispatcher) dispatchLink(ctx context.Context, rawURL, linkText, resourceType, articleDir string) *grabdoc.ExtractionResult {
	adapter, err := d.Registry.Get(rawURL, resourceType)
	if err != nil {
		return &grabdoc.ExtractionResult{
			Success:      false,
			ResourceType: resourceType,
			Error:        grabdoc.ErrorMessage(err),
		}
	}

	if d.Limiter != nil {
		if u, perr := url.Parse(rawURL); perr == nil && u.Host != "" {
			if werr := d.Limiter.Wait(ctx, u.Host); werr != nil {
				return &grabdoc.ExtractionResult{
					Success:      false,
					ResourceType: adapter.ResourceType(),
					Error:        werr.Error(),
				}
			}
		}
	}

	result, err := adapter.Extract(ctx, rawURL, linkText, articleDir)
	if err != nil {
		return &grabdoc.ExtractionResult{
			Success:      false,
			ResourceType: adapter.ResourceType(),
			Error:        err.Error(),
		}
	}
	if result == nil {
		return &grabdoc.ExtractionResult{
			Success:      false,
			ResourceType: adapter.ResourceType(),
			Error:        "adapter returned no result",
		}
	}

	return result
}
