package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/dispatch"
	"github.com/fwojciec/grabdoc/fs"
	"github.com/fwojciec/grabdoc/hook"
)

// Dependencies holds the wired services the extraction pipeline uses.
type Dependencies struct {
	Registry   *grabdoc.Registry
	Dispatcher *dispatch.Dispatcher
	Runner     *hook.Runner
	History    grabdoc.HistoryService

	OutputDir     string
	SkipResources bool
	SkipExtracted bool

	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome is the per-URL result object serialized to stdout.
type Outcome struct {
	URL                string                      `json:"url"`
	SourceType         string                      `json:"source_type"`
	Success            bool                        `json:"success"`
	ResourceType       string                      `json:"resource_type,omitempty"`
	OutputDir          string                      `json:"output_dir,omitempty"`
	FilesCreated       []string                    `json:"files_created,omitempty"`
	Note               string                      `json:"note,omitempty"`
	Error              string                      `json:"error,omitempty"`
	Skipped            bool                        `json:"skipped,omitempty"`
	ResourceExtraction []*grabdoc.ExtractionResult `json:"resource_extraction,omitempty"`
	HookResults        []*grabdoc.HookResult       `json:"hook_results,omitempty"`
}

// RunBatch extracts every URL in order, pausing between them, and writes
// the JSON outcome to stdout: a single object for one URL, an array
// otherwise. Individual extraction failures are recorded in their
// outcome and do not fail the run.
func (m *Main) RunBatch(ctx context.Context, deps *Dependencies, urls []string, delay time.Duration) error {
	outcomes := make([]*Outcome, 0, len(urls))
	for i, u := range urls {
		if i > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if len(urls) > 1 {
			fmt.Fprintf(deps.Stderr, "\n[%d/%d] %s\n", i+1, len(urls), u)
		}
		outcomes = append(outcomes, m.ExtractURL(ctx, deps, u))
	}

	var payload any = outcomes
	if len(outcomes) == 1 {
		payload = outcomes[0]
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}

// ExtractURL runs the full pipeline for one URL: source detection,
// adapter resolution, extraction, linked-resource dispatch, hooks, and
// history recording. All failures land in the outcome's error field.
func (m *Main) ExtractURL(ctx context.Context, deps *Dependencies, url string) *Outcome {
	out := &Outcome{URL: url, SourceType: grabdoc.DetectSource(url)}
	fmt.Fprintf(deps.Stderr, "Detected source: %s -> %s\n", out.SourceType, url)

	if deps.SkipExtracted && deps.History != nil {
		if prev, err := deps.History.FindExtractionByURL(ctx, url); err == nil && prev.Success {
			out.Success = true
			out.Skipped = true
			out.ResourceType = prev.ResourceType
			out.OutputDir = prev.OutputDir
			out.Note = "already extracted " + prev.CreatedAt.Format("2006-01-02")
			fmt.Fprintf(deps.Stderr, "  Skipping (extracted %s)\n", prev.CreatedAt.Format("2006-01-02"))
			return out
		}
	}

	a, err := deps.Registry.Get(url, out.SourceType)
	if err != nil {
		out.Error = grabdoc.ErrorMessage(err)
		return out
	}

	dir := filepath.Join(deps.OutputDir, grabdoc.SlugFromURL(url))
	out.OutputDir = dir

	result, err := a.Extract(ctx, url, "", dir)
	if err != nil {
		out.Error = err.Error()
		m.record(ctx, deps, out, nil)
		return out
	}
	out.Success = result.Success
	out.ResourceType = result.ResourceType
	out.FilesCreated = result.FilesCreated
	out.Note = result.Note
	out.Error = result.Error

	meta, metaErr := fs.ReadMetadata(dir)

	if out.Success && !deps.SkipResources && metaErr == nil && len(meta.Links) > 0 {
		results, derr := deps.Dispatcher.DispatchResources(ctx, meta, dir, dispatchProgress(deps.Stderr))
		if len(results) > 0 {
			out.ResourceExtraction = results
			meta.ResourceExtraction = results
			if err := fs.WriteMetadata(dir, meta); err != nil {
				deps.Logger.Warn("failed to update metadata", "dir", dir, "err", err)
			}
		}
		if derr != nil {
			out.Error = derr.Error()
			m.record(ctx, deps, out, meta)
			return out
		}
	}

	// Hooks run only after a clean extraction. Adapters that write no
	// metadata document still hand hooks a minimal one.
	if out.Success && out.Error == "" && deps.Runner != nil && len(deps.Runner.Hooks) > 0 {
		hookMeta := meta
		if metaErr != nil {
			hookMeta = &grabdoc.Metadata{Success: result.Success, ResourceType: result.ResourceType}
		}
		out.HookResults = deps.Runner.RunHooks(ctx, hookMeta, dir)
	}

	m.record(ctx, deps, out, meta)
	fmt.Fprintf(deps.Stderr, "  Done: %s/\n", dir)
	return out
}

// record persists the outcome to the extraction history, when enabled.
func (m *Main) record(ctx context.Context, deps *Dependencies, out *Outcome, meta *grabdoc.Metadata) {
	if deps.History == nil {
		return
	}

	extraction := &grabdoc.Extraction{
		URL:          out.URL,
		ResourceType: out.ResourceType,
		OutputDir:    out.OutputDir,
		Success:      out.Success,
	}
	if extraction.ResourceType == "" {
		extraction.ResourceType = out.SourceType
	}
	if meta != nil && meta.Quality != nil {
		extraction.ContentHash = meta.Quality.ContentHash
	}

	if err := deps.History.CreateExtraction(ctx, extraction); err != nil {
		deps.Logger.Warn("failed to record extraction", "url", out.URL, "err", grabdoc.ErrorMessage(err))
	}
}

// dispatchProgress renders dispatcher events as stderr progress lines.
func dispatchProgress(stderr io.Writer) dispatch.ProgressFunc {
	return func(e dispatch.ProgressEvent) {
		switch e.Type {
		case dispatch.ProgressStarted:
			if e.Total > 0 {
				fmt.Fprintf(stderr, "  Extracting %d linked resources...\n", e.Total)
			}
		case dispatch.ProgressFailed:
			fmt.Fprintf(stderr, "  resource failed: %s\n", e.URL)
		}
	}
}
