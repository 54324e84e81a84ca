package hook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/grabdoc"
)

// Runner executes a fixed list of hooks after successful extractions. The
// hook list is built once per process invocation and reused across URLs.
type Runner struct {
	Hooks  []grabdoc.Hook
	Logger *slog.Logger
}

// RunHooks consults each hook in order and runs the ones that claim the
// extraction. A hook error or panic, whether from ShouldRun or Run, is
// downgraded to a failed HookResult carrying the message so later hooks
// still execute. Hooks that decline do not contribute a result.
func (r *Runner) RunHooks(ctx context.Context, meta *grabdoc.Metadata, dir string) []*grabdoc.HookResult {
	var results []*grabdoc.HookResult
	for _, h := range r.Hooks {
		result, ran := r.runHook(ctx, h, meta, dir)
		if !ran {
			continue
		}

		results = append(results, result)
		if r.Logger != nil && len(result.FilesCreated) > 0 {
			r.Logger.Info("hook created files", "hook", hookName(h), "files", len(result.FilesCreated))
		}
	}
	return results
}

// runHook invokes one hook, converting errors and panics into a failed
// result. ran is false when the hook declined the extraction.
func (r *Runner) runHook(ctx context.Context, h grabdoc.Hook, meta *grabdoc.Metadata, dir string) (result *grabdoc.HookResult, ran bool) {
	defer func() {
		if p := recover(); p != nil {
			result = r.failed(h, fmt.Errorf("hook panicked: %v", p))
			ran = true
		}
	}()

	ok, err := h.ShouldRun(ctx, meta, dir)
	if err != nil {
		return r.failed(h, err), true
	}
	if !ok {
		return nil, false
	}

	result, err = h.Run(ctx, meta, dir)
	if err != nil {
		return r.failed(h, err), true
	}
	if result == nil {
		return r.failed(h, fmt.Errorf("hook returned no result")), true
	}
	return result, true
}

func (r *Runner) failed(h grabdoc.Hook, err error) *grabdoc.HookResult {
	if r.Logger != nil {
		r.Logger.Warn("hook failed", "hook", hookName(h), "err", err)
	}
	return &grabdoc.HookResult{Success: false, Error: err.Error()}
}

// hookName resolves a display name: self-named hooks win, anything else
// reports its type.
func hookName(h grabdoc.Hook) string {
	if n, ok := h.(interface{ Name() string }); ok {
		return n.Name()
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", h), "*")
}
