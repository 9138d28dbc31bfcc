package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "cubeviewer.yaml"

// userFileName is the config file inside ConfigDir.
const userFileName = "config.yaml"

// Load builds the effective config. Each layer overrides the previous one:
// built-in defaults, then the first config file found, then command-line flags.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.source = path
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns ./cubeviewer.yaml if present, else the user config
// file, else "".
func findConfigFile() string {
	for _, path := range []string{FileName, filepath.Join(ConfigDir(), userFileName)} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory for cubeviewer settings.
// It falls back to the temp directory when the OS reports none.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil || !filepath.IsAbs(base) {
		base = os.TempDir()
	}
	return filepath.Join(base, "cubeviewer")
}

// loadFromFile overlays a YAML file on cfg. Scalars and sections merge field
// by field. Key bindings merge per action: an action named in the file takes
// exactly the keys listed there, and those keys are taken away from the
// actions the file leaves alone.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// yaml.v3 decodes into an existing map in place, so the file's bindings
	// go into a fresh map and are merged afterwards.
	defaults := cfg.Controls.Keys
	cfg.Controls.Keys = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Controls.Keys = defaults
		return err
	}
	cfg.Controls.Keys = mergeKeys(defaults, cfg.Controls.Keys)
	return nil
}

// mergeKeys returns base with the bindings in override applied on top.
func mergeKeys(base, override map[string][]string) map[string][]string {
	claimed := make(map[string]bool)
	for _, keys := range override {
		for _, k := range keys {
			claimed[strings.ToLower(k)] = true
		}
	}

	merged := make(map[string][]string, len(base)+len(override))
	for action, keys := range base {
		if _, ok := override[action]; ok {
			continue
		}
		kept := make([]string, 0, len(keys))
		for _, k := range keys {
			if !claimed[strings.ToLower(k)] {
				kept = append(kept, k)
			}
		}
		merged[action] = kept
	}
	for action, keys := range override {
		merged[action] = keys
	}
	return merged
}
