// Package hook loads and runs post-extraction hooks. Hooks are external
// executables speaking a small command protocol: "describe" prints the
// hook's name and capabilities as JSON; "should-run DIR" and "run DIR"
// receive the extraction metadata as JSON on stdin and print a JSON
// decision or result on stdout.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/grabdoc"
)

// Capabilities a hook executable must advertise in its describe output.
const (
	capShouldRun = "should_run"
	capRun       = "run"
)

// description is the JSON document a hook prints for "describe".
type description struct {
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
}

var _ grabdoc.Hook = (*ScriptHook)(nil)

// ScriptHook runs a hook executable. Each call spawns one process; the
// script keeps no state between calls.
type ScriptHook struct {
	path string
	name string
}

// Name returns the hook's self-reported name.
func (h *ScriptHook) Name() string {
	return h.name
}

// ShouldRun asks the script whether it wants to process this extraction.
// The script answers with a JSON boolean.
func (h *ScriptHook) ShouldRun(ctx context.Context, meta *grabdoc.Metadata, dir string) (bool, error) {
	out, err := h.invoke(ctx, "should-run", meta, dir)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := json.Unmarshal(bytes.TrimSpace(out), &ok); err != nil {
		return false, grabdoc.Errorf(grabdoc.EINVALID, "hook %s: should-run printed %q, want a JSON boolean", h.name, bytes.TrimSpace(out))
	}
	return ok, nil
}

// Run executes the hook against the extraction output in dir and parses
// the result it prints.
func (h *ScriptHook) Run(ctx context.Context, meta *grabdoc.Metadata, dir string) (*grabdoc.HookResult, error) {
	out, err := h.invoke(ctx, "run", meta, dir)
	if err != nil {
		return nil, err
	}
	var result grabdoc.HookResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "hook %s: run printed an invalid result: %v", h.name, err)
	}
	return &result, nil
}

// invoke runs one protocol command, feeding the metadata document on
// stdin. The script's stderr is folded into the error on failure.
func (h *ScriptHook) invoke(ctx context.Context, command string, meta *grabdoc.Metadata, dir string) ([]byte, error) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("hook %s: encoding metadata: %w", h.name, err)
	}

	cmd := exec.CommandContext(ctx, h.path, command, dir)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("hook %s: %s: %s", h.name, command, msg)
	}
	return stdout.Bytes(), nil
}
