package hook_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/hook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns no hooks when the config file is absent", func(t *testing.T) {
		t.Parallel()

		hooks, err := hook.LoadConfig(context.Background(), filepath.Join(t.TempDir(), ".grabdoc.toml"), nil)

		require.NoError(t, err)
		assert.Empty(t, hooks)
	})

	t.Run("loads hooks with scripts resolved relative to the config directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
		writeScript(t, filepath.Join(dir, "scripts"), "one.sh", goodScript)
		writeScript(t, filepath.Join(dir, "scripts"), "two.sh", goodScript)

		configPath := filepath.Join(dir, ".grabdoc.toml")
		require.NoError(t, os.WriteFile(configPath, []byte(`
[[hooks]]
script = "./scripts/one.sh"

[[hooks]]
script = "./scripts/two.sh"
resource_types = ["youtube"]
`), 0o644))

		hooks, err := hook.LoadConfig(context.Background(), configPath, nil)

		require.NoError(t, err)
		require.Len(t, hooks, 2)

		// The unfiltered hook consults the script; the filtered one denies
		// resource types outside its set without asking.
		ok, err := hooks[0].ShouldRun(context.Background(), &grabdoc.Metadata{ResourceType: "substack"}, dir)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = hooks[1].ShouldRun(context.Background(), &grabdoc.Metadata{ResourceType: "substack"}, dir)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("skips entries whose script fails to load and warns", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeScript(t, dir, "good.sh", goodScript)

		configPath := filepath.Join(dir, ".grabdoc.toml")
		require.NoError(t, os.WriteFile(configPath, []byte(`
[[hooks]]
script = "./missing.sh"

[[hooks]]
script = "./good.sh"
`), 0o644))

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		hooks, err := hook.LoadConfig(context.Background(), configPath, logger)

		require.NoError(t, err)
		assert.Len(t, hooks, 1)
		assert.Contains(t, buf.String(), "failed to load hook")
		assert.Contains(t, buf.String(), "missing.sh")
	})

	t.Run("skips entries without a script path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, ".grabdoc.toml")
		require.NoError(t, os.WriteFile(configPath, []byte(`
[[hooks]]
resource_types = ["notion"]
`), 0o644))

		hooks, err := hook.LoadConfig(context.Background(), configPath, nil)

		require.NoError(t, err)
		assert.Empty(t, hooks)
	})

	t.Run("fails with invalid for malformed TOML", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, ".grabdoc.toml")
		require.NoError(t, os.WriteFile(configPath, []byte("[[hooks]\nscript=\n"), 0o644))

		_, err := hook.LoadConfig(context.Background(), configPath, nil)

		require.Error(t, err)
		assert.Equal(t, grabdoc.EINVALID, grabdoc.ErrorCode(err))
	})
}
