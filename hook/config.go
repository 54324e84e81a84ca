package hook

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/grabdoc"
	"github.com/spf13/viper"
)

// DefaultConfigFile is looked up in the working directory when no
// explicit config path is given.
const DefaultConfigFile = ".grabdoc.toml"

// Config mirrors the hook declarations in a .grabdoc.toml file:
//
//	[[hooks]]
//	script = "./scripts/summarize"
//	resource_types = ["substack", "web"]
type Config struct {
	Hooks []EntryConfig `mapstructure:"hooks"`
}

// EntryConfig is a single [[hooks]] declaration.
type EntryConfig struct {
	Script        string   `mapstructure:"script"`
	ResourceTypes []string `mapstructure:"resource_types"`
}

// LoadConfig loads the hooks declared in a TOML config file. A missing
// file is not an error: no hooks are returned. Script paths are resolved
// relative to the config file's directory. Entries whose script fails to
// load are logged as warnings and skipped so one bad entry does not block
// the others; entries without a script path are skipped silently.
func LoadConfig(ctx context.Context, path string, logger *slog.Logger) ([]grabdoc.Hook, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "hook config %s: %v", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "hook config %s: %v", path, err)
	}

	dir := filepath.Dir(path)
	var hooks []grabdoc.Hook
	for _, entry := range cfg.Hooks {
		if entry.Script == "" {
			continue
		}

		scriptPath := entry.Script
		if !filepath.IsAbs(scriptPath) {
			scriptPath = filepath.Join(dir, scriptPath)
		}

		h, err := LoadScript(ctx, scriptPath)
		if err != nil {
			if logger != nil {
				logger.Warn("failed to load hook", "script", entry.Script, "err", grabdoc.ErrorMessage(err))
			}
			continue
		}

		if len(entry.ResourceTypes) > 0 {
			hooks = append(hooks, grabdoc.NewFilteredHook(h, entry.ResourceTypes))
		} else {
			hooks = append(hooks, h)
		}
	}
	return hooks, nil
}
