package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/cubeviewer/internal/controls"
	"github.com/Faultbox/cubeviewer/pkg/formats"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Resizable {
		t.Error("expected fixed-size window by default")
	}

	if cfg.Assets.Mesh != "assets/cube.obj" {
		t.Errorf("expected mesh assets/cube.obj, got %s", cfg.Assets.Mesh)
	}
	if cfg.Assets.Texture != "assets/texture.jpg" {
		t.Errorf("expected texture assets/texture.jpg, got %s", cfg.Assets.Texture)
	}

	if cfg.Mesh.Limits != formats.CubeLimits() {
		t.Errorf("expected cube limits, got %+v", cfg.Mesh.Limits)
	}

	if cfg.Camera.Position != [3]float32{0, 0, 3} {
		t.Errorf("expected camera at (0, 0, 3), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.SpinSpeed != 10 {
		t.Errorf("expected spin speed 10, got %f", cfg.Camera.SpinSpeed)
	}

	tuning := cfg.Tuning()
	if tuning != controls.DefaultTuning() {
		t.Errorf("expected default tuning, got %+v", tuning)
	}

	if cfg.Lighting.Position != [4]float32{0, 5, 20, 2} {
		t.Errorf("unexpected light position %v", cfg.Lighting.Position)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestDefaultKeys_CoverAllActions(t *testing.T) {
	keys := DefaultKeys()
	for _, name := range controls.ActionNames() {
		if len(keys[name]) == 0 {
			t.Errorf("action %s has no default key", name)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cubeviewer.yaml")

	yamlContent := `
window:
  width: 1024
  height: 768
  resizable: true

assets:
  mesh: "models/box.obj"

mesh:
  triangulate: true
  limits:
    max_faces: 0

camera:
  position: [1, 2, 5]
  move_step: 0.25

lighting:
  diffuse: [0.5, 0.5, 0.5, 1]

controls:
  keys:
    forward: ["Up"]
    look_up: ["PageUp"]

logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 || !cfg.Window.Resizable {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if cfg.Window.Title != "3D Cube" {
		t.Errorf("unset title should keep default, got %q", cfg.Window.Title)
	}

	if cfg.Assets.Mesh != "models/box.obj" {
		t.Errorf("expected mesh models/box.obj, got %s", cfg.Assets.Mesh)
	}
	if cfg.Assets.Texture != "assets/texture.jpg" {
		t.Errorf("unset texture should keep default, got %s", cfg.Assets.Texture)
	}

	opts := cfg.OBJOptions()
	if !opts.Triangulate {
		t.Error("expected triangulation enabled")
	}
	if opts.Limits.MaxFaces != 0 || opts.Limits.MaxPositions != 8 {
		t.Errorf("expected merged limits, got %+v", opts.Limits)
	}

	if cfg.Camera.Position != [3]float32{1, 2, 5} {
		t.Errorf("expected camera (1, 2, 5), got %v", cfg.Camera.Position)
	}
	if cfg.Tuning().MoveStep != 0.25 {
		t.Errorf("expected move step 0.25, got %f", cfg.Tuning().MoveStep)
	}

	if cfg.Lighting.Diffuse != [4]float32{0.5, 0.5, 0.5, 1} {
		t.Errorf("unexpected diffuse %v", cfg.Lighting.Diffuse)
	}

	if got := cfg.Controls.Keys["forward"]; len(got) != 1 || got[0] != "Up" {
		t.Errorf("expected forward bound to Up, got %v", got)
	}
	if got := cfg.Controls.Keys["quit"]; len(got) != 1 || got[0] != "Escape" {
		t.Errorf("unset bindings should keep defaults, got %v", got)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFile_RebindTakesKeyFromDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cubeviewer.yaml")
	yamlContent := "controls:\n  keys:\n    forward: [Up]\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if got := cfg.Controls.Keys["forward"]; len(got) != 1 || got[0] != "Up" {
		t.Errorf("expected forward bound to Up, got %v", got)
	}
	if got := cfg.Controls.Keys["look_up"]; len(got) != 0 {
		t.Errorf("Up should be taken away from look_up, got %v", got)
	}
	if got := cfg.Controls.Keys["look_down"]; len(got) != 1 || got[0] != "Down" {
		t.Errorf("untouched actions should keep defaults, got %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("merged bindings should be valid: %v", err)
	}
}

func TestLoadFromFile_KeepsDefaultsWithoutControls(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cubeviewer.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if got := cfg.HelpText(); got != controls.HelpText {
		t.Errorf("bindings should be unchanged, got help %q", got)
	}
}

func TestMergeKeys(t *testing.T) {
	base := map[string][]string{
		"light_up": {"+", "=", "Keypad +"},
		"quit":     {"Escape"},
	}
	merged := mergeKeys(base, map[string][]string{"screenshot": {"keypad +"}})

	if got := merged["light_up"]; len(got) != 2 || got[0] != "+" || got[1] != "=" {
		t.Errorf("expected light_up to lose Keypad +, got %v", got)
	}
	if got := merged["screenshot"]; len(got) != 1 {
		t.Errorf("expected screenshot binding, got %v", got)
	}
	if got := merged["quit"]; len(got) != 1 || got[0] != "Escape" {
		t.Errorf("expected quit unchanged, got %v", got)
	}
	if len(base["light_up"]) != 3 {
		t.Error("base map must not be modified")
	}
}

func TestLoad_RecordsSource(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Source() != "" {
		t.Errorf("expected no source without a config file, got %q", cfg.Source())
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Source() != FileName {
		t.Errorf("expected source %s, got %q", FileName, cfg.Source())
	}
	if cfg.Window.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Window.Width)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  broken line here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/cubeviewer.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"no mesh", func(c *Config) { c.Assets.Mesh = "" }, "assets.mesh"},
		{"no texture", func(c *Config) { c.Assets.Texture = "" }, "assets.texture"},
		{"negative limit", func(c *Config) { c.Mesh.Limits.MaxNormals = -1 }, "mesh limits"},
		{"negative line length", func(c *Config) { c.Mesh.MaxLineLength = -5 }, "max_line_length"},
		{"diffuse too bright", func(c *Config) { c.Lighting.Diffuse[1] = 1.5 }, "lighting.diffuse[1]"},
		{"unknown action", func(c *Config) { c.Controls.Keys["jump"] = []string{"Space"} }, "unknown action"},
		{"key bound twice", func(c *Config) { c.Controls.Keys["forward"] = []string{"Up"} }, `"Up" is bound to both`},
		{"key bound twice, other case", func(c *Config) { c.Controls.Keys["backward"] = []string{"w"} }, "is bound to both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != FileName {
		t.Errorf("expected to find %s in current directory, got %q", FileName, path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "asset flags",
			setup: func() {
				*flagMesh = "other.obj"
				*flagTexture = "other.png"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Mesh != "other.obj" || cfg.Assets.Texture != "other.png" {
					t.Errorf("unexpected assets %+v", cfg.Assets)
				}
			},
			teardown: func() {
				*flagMesh = ""
				*flagTexture = ""
			},
		},
		{
			name: "size flags",
			setup: func() {
				*flagWidth = 1920
				*flagHeight = 1080
				*flagResizable = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 || !cfg.Window.Resizable {
					t.Errorf("unexpected window %+v", cfg.Window)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
				*flagResizable = false
			},
		},
		{
			name:  "triangulate flag",
			setup: func() { *flagTriangle = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Mesh.Triangulate {
					t.Error("expected triangulation enabled")
				}
			},
			teardown: func() { *flagTriangle = false },
		},
		{
			name:  "watch flag",
			setup: func() { *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Assets.Watch {
					t.Error("expected asset watching enabled")
				}
			},
			teardown: func() { *flagWatch = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsNoOverride(t *testing.T) {
	cfg := Default()
	applyFlags(cfg)

	def := Default()
	if cfg.Window != def.Window || cfg.Assets != def.Assets || cfg.Logging != def.Logging {
		t.Error("flags should not change config when unset")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cubeviewer.yaml")

	cfg := Default()
	cfg.Window.Width = 1280
	cfg.Controls.Keys["forward"] = []string{"I"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", loaded.Window.Width)
	}
	if got := loaded.Controls.Keys["forward"]; len(got) != 1 || got[0] != "I" {
		t.Errorf("expected forward bound to I, got %v", got)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("reloaded config should be valid: %v", err)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected saved file at %s: %v", path, err)
	}
}

func TestHelpText(t *testing.T) {
	cfg := Default()
	if got := cfg.HelpText(); got != controls.HelpText {
		t.Errorf("default bindings should use the stock help text, got %q", got)
	}

	cfg.Controls.Keys["forward"] = []string{"Up"}
	if got := cfg.HelpText(); !strings.Contains(got, "forward: Up") {
		t.Errorf("expected generated help to list forward: Up, got %q", got)
	}
}
