// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Faultbox/cubeviewer/internal/controls"
	"github.com/Faultbox/cubeviewer/pkg/formats"
)

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Assets     AssetsConfig     `yaml:"assets"`
	Mesh       MeshConfig       `yaml:"mesh"`
	Camera     CameraConfig     `yaml:"camera"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Controls   ControlsConfig   `yaml:"controls"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`

	source string // file the config was loaded from
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
}

// AssetsConfig holds the input file paths.
type AssetsConfig struct {
	Mesh    string `yaml:"mesh"`
	Texture string `yaml:"texture"`
	Watch   bool   `yaml:"watch"` // Reload when either file changes
}

// MeshConfig holds OBJ parsing settings.
type MeshConfig struct {
	Limits        formats.OBJLimits `yaml:"limits"`
	MaxLineLength int               `yaml:"max_line_length"`
	Triangulate   bool              `yaml:"triangulate"`
}

// CameraConfig holds the start position and motion steps.
type CameraConfig struct {
	Position  [3]float32 `yaml:"position"`
	SpinSpeed float32    `yaml:"spin_speed"` // degrees per second
	MoveStep  float32    `yaml:"move_step"`
	LiftStep  float32    `yaml:"lift_step"`
	TurnStep  float32    `yaml:"turn_step"` // degrees
}

// LightingConfig holds the initial light and its intensity step.
type LightingConfig struct {
	Ambient  [4]float32 `yaml:"ambient"`
	Diffuse  [4]float32 `yaml:"diffuse"`
	Position [4]float32 `yaml:"position"`
	Step     float32    `yaml:"step"`
}

// ControlsConfig maps action names to SDL key names.
type ControlsConfig struct {
	Keys map[string][]string `yaml:"keys"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the settings of the classic cube viewer.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "3D Cube",
			Width:     800,
			Height:    600,
			Resizable: false,
			VSync:     true,
		},
		Assets: AssetsConfig{
			Mesh:    "assets/cube.obj",
			Texture: "assets/texture.jpg",
		},
		Mesh: MeshConfig{
			Limits:        formats.CubeLimits(),
			MaxLineLength: formats.DefaultOBJLineLength,
		},
		Camera: CameraConfig{
			Position:  [3]float32{0, 0, 3},
			SpinSpeed: 10,
			MoveStep:  0.1,
			LiftStep:  0.05,
			TurnStep:  1,
		},
		Lighting: LightingConfig{
			Ambient:  [4]float32{0.2, 0.2, 0.2, 0.2},
			Diffuse:  [4]float32{0.8, 0.8, 0.8, 0.8},
			Position: [4]float32{0, 5, 20, 2},
			Step:     0.1,
		},
		Controls: ControlsConfig{
			Keys: DefaultKeys(),
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "cube",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultKeys returns the default action bindings, using SDL key names.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		controls.ActionForward.String():      {"W"},
		controls.ActionBackward.String():     {"S"},
		controls.ActionStrafeLeft.String():   {"A"},
		controls.ActionStrafeRight.String():  {"D"},
		controls.ActionLookUp.String():       {"Up"},
		controls.ActionLookDown.String():     {"Down"},
		controls.ActionLookLeft.String():     {"Left"},
		controls.ActionLookRight.String():    {"Right"},
		controls.ActionSink.String():         {"Q"},
		controls.ActionRise.String():         {"E"},
		controls.ActionLightUp.String():      {"+", "=", "Keypad +"},
		controls.ActionLightDown.String():    {"-", "Keypad -"},
		controls.ActionHelp.String():         {"F1"},
		controls.ActionScreenshot.String():   {"F12"},
		controls.ActionToggleBounds.String(): {"B"},
		controls.ActionReload.String():       {"F5"},
		controls.ActionQuit.String():         {"Escape"},
	}
}

// Validate checks settings that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Assets.Mesh == "" {
		errs = append(errs, errors.New("assets.mesh is empty"))
	}
	if c.Assets.Texture == "" {
		errs = append(errs, errors.New("assets.texture is empty"))
	}

	l := c.Mesh.Limits
	if l.MaxPositions < 0 || l.MaxTexCoords < 0 || l.MaxNormals < 0 || l.MaxFaces < 0 {
		errs = append(errs, fmt.Errorf("mesh limits must not be negative: %+v", l))
	}
	if c.Mesh.MaxLineLength < 0 {
		errs = append(errs, fmt.Errorf("mesh.max_line_length must not be negative, got %d", c.Mesh.MaxLineLength))
	}

	for i := 0; i < 3; i++ {
		if d := c.Lighting.Diffuse[i]; d < 0 || d > 1 {
			errs = append(errs, fmt.Errorf("lighting.diffuse[%d] must be within [0, 1], got %g", i, d))
		}
	}

	owner := make(map[string]string)
	for _, name := range slices.Sorted(maps.Keys(c.Controls.Keys)) {
		if _, err := controls.ParseAction(name); err != nil {
			errs = append(errs, fmt.Errorf("controls.keys: %w", err))
		}
		for _, key := range c.Controls.Keys[name] {
			k := strings.ToLower(key)
			if prev, ok := owner[k]; ok && prev != name {
				errs = append(errs, fmt.Errorf("controls.keys: %q is bound to both %s and %s", key, prev, name))
				continue
			}
			owner[k] = name
		}
	}

	return errors.Join(errs...)
}

// Source returns the path of the config file that was loaded, or "" when
// only defaults and flags apply.
func (c *Config) Source() string {
	return c.source
}

// OBJOptions returns the parser options for the configured mesh.
func (c *Config) OBJOptions() formats.OBJOptions {
	return formats.OBJOptions{
		Limits:        c.Mesh.Limits,
		MaxLineLength: c.Mesh.MaxLineLength,
		Triangulate:   c.Mesh.Triangulate,
	}
}

// Tuning returns the per-event step sizes.
func (c *Config) Tuning() controls.Tuning {
	return controls.Tuning{
		MoveStep:  c.Camera.MoveStep,
		LiftStep:  c.Camera.LiftStep,
		TurnStep:  c.Camera.TurnStep,
		LightStep: c.Lighting.Step,
	}
}

// HelpText returns the usage message. Custom bindings get a generated list
// instead of the stock text.
func (c *Config) HelpText() string {
	if maps.EqualFunc(c.Controls.Keys, DefaultKeys(), slices.Equal[[]string]) {
		return controls.HelpText
	}
	return controls.BindingsHelp(c.Controls.Keys)
}
