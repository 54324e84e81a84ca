package hook

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fwojciec/grabdoc"
)

// LoadScript loads a hook from an executable at path. The executable must
// answer the describe command with a JSON document advertising at least
// the should_run and run capabilities. It fails with ENOTFOUND when the
// path does not exist and EINVALID when the script does not satisfy the
// protocol.
func LoadScript(ctx context.Context, path string) (*ScriptHook, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "hook script %s: %v", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, grabdoc.Errorf(grabdoc.ENOTFOUND, "hook script not found: %s", path)
	}

	out, err := exec.CommandContext(ctx, abs, "describe").Output()
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "hook script %s must answer the describe command: %v", filepath.Base(path), err)
	}

	var desc description
	if err := json.Unmarshal(out, &desc); err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "hook script %s: describe printed invalid JSON: %v", filepath.Base(path), err)
	}

	caps := make(map[string]bool, len(desc.Capabilities))
	for _, c := range desc.Capabilities {
		caps[c] = true
	}
	if !caps[capShouldRun] || !caps[capRun] {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "hook script %s must advertise the %s and %s capabilities, got %v", filepath.Base(path), capShouldRun, capRun, desc.Capabilities)
	}

	name := desc.Name
	if name == "" {
		name = filepath.Base(path)
	}
	return &ScriptHook{path: abs, name: name}, nil
}
