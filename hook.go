package grabdoc

import "context"

// HookResult is the outcome contract returned by a post-extraction hook.
type HookResult struct {
	Success      bool     `json:"success"`
	FilesCreated []string `json:"files_created"`
	Error        string   `json:"error,omitempty"`
}

// Hook is consumer-supplied processing that runs after a successful
// extraction. Hooks are loaded once per process invocation and reused
// across extractions; they receive the extraction's metadata document and
// the article output directory.
type Hook interface {
	// ShouldRun reports whether the hook wants to process this extraction.
	ShouldRun(ctx context.Context, meta *Metadata, dir string) (bool, error)

	// Run executes the hook against the extraction output in dir.
	Run(ctx context.Context, meta *Metadata, dir string) (*HookResult, error)
}

// Ensure FilteredHook implements Hook.
var _ Hook = (*FilteredHook)(nil)

// FilteredHook narrows an inner hook's ShouldRun to a fixed set of
// resource types. Run is forwarded unchanged. Composition keeps the inner
// hook unaware of the filter.
type FilteredHook struct {
	inner Hook
	types map[string]struct{}
}

// NewFilteredHook wraps inner so it is only consulted for the given
// resource types.
func NewFilteredHook(inner Hook, resourceTypes []string) *FilteredHook {
	types := make(map[string]struct{}, len(resourceTypes))
	for _, t := range resourceTypes {
		types[t] = struct{}{}
	}
	return &FilteredHook{inner: inner, types: types}
}

// ShouldRun returns false without consulting the inner hook when the
// metadata's resource type is outside the configured set, and delegates to
// the inner hook otherwise.
func (h *FilteredHook) ShouldRun(ctx context.Context, meta *Metadata, dir string) (bool, error) {
	if meta == nil {
		return false, nil
	}
	if _, ok := h.types[meta.ResourceType]; !ok {
		return false, nil
	}
	return h.inner.ShouldRun(ctx, meta, dir)
}

// Run forwards to the inner hook.
func (h *FilteredHook) Run(ctx context.Context, meta *Metadata, dir string) (*HookResult, error) {
	return h.inner.Run(ctx, meta, dir)
}
