// Package viewer implements the interactive frame loop: drain input, render,
// then advance the object spin.
package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cubeviewer/internal/controls"
	"github.com/Faultbox/cubeviewer/internal/engine/camera"
	"github.com/Faultbox/cubeviewer/internal/engine/lighting"
	"github.com/Faultbox/cubeviewer/internal/logger"
)

// Platform is the windowing layer the loop drives.
type Platform interface {
	// PollEvents returns all pending events without blocking.
	PollEvents() []controls.Event
	SwapBuffers()
	ShowMessage(title, text string) error
}

// Renderer draws a scene snapshot. It must not modify the scene.
type Renderer interface {
	Render(scene *Scene)
	Resize(width, height int)
}

// Screenshotter captures the frame that was just rendered.
type Screenshotter interface {
	Capture() (string, error)
}

// Reloader reloads assets from disk. A failed reload leaves the previous
// assets in place.
type Reloader interface {
	Reload() error
}

// Scene is the mutable state owned by the loop.
type Scene struct {
	Camera *camera.FlyCamera
	Lights *lighting.Lights

	ShowBounds bool // Draw the mesh bounding box
}

// Config holds loop settings.
type Config struct {
	SpinSpeed float32 // Degrees per second
	Tuning    controls.Tuning
	HelpTitle string
	HelpText  string
}

// DefaultConfig returns the classic loop settings.
func DefaultConfig() Config {
	return Config{
		SpinSpeed: 10.0,
		Tuning:    controls.DefaultTuning(),
		HelpTitle: "Usage",
		HelpText:  controls.HelpText,
	}
}

// Viewer runs the frame loop.
type Viewer struct {
	config     Config
	platform   Platform
	renderer   Renderer
	screenshot Screenshotter
	reloader   Reloader
	dispatcher *controls.Dispatcher
	animator   *Animator
	clock      Clock

	scene   Scene
	running bool

	screenshotRequested bool

	// FPS bookkeeping
	frameCount int
	fpsStart   float64
}

// New creates a viewer. screenshot may be nil to disable captures.
func New(cfg Config, platform Platform, renderer Renderer, screenshot Screenshotter, clock Clock, scene Scene) *Viewer {
	return &Viewer{
		config:     cfg,
		platform:   platform,
		renderer:   renderer,
		screenshot: screenshot,
		dispatcher: controls.NewDispatcher(cfg.Tuning),
		animator:   NewAnimator(clock),
		clock:      clock,
		scene:      scene,
		running:    true,
	}
}

// SetReloader enables the reload action and file-change reloads.
func (v *Viewer) SetReloader(r Reloader) {
	v.reloader = r
}

// Scene returns the state owned by the loop.
func (v *Viewer) Scene() *Scene {
	return &v.scene
}

// Running reports whether the loop has not been stopped.
func (v *Viewer) Running() bool {
	return v.running
}

// Run executes frames until a quit event arrives.
func (v *Viewer) Run() {
	v.running = true
	v.animator.Reset()
	v.fpsStart = v.clock.Ticks().Seconds()

	logger.Info("starting frame loop")
	for v.Running() {
		v.Frame()
	}
	logger.Info("frame loop stopped")
}

// Frame runs one iteration: events, render, present, animate.
func (v *Viewer) Frame() {
	for _, e := range v.platform.PollEvents() {
		v.handleEvent(e)
	}
	if !v.running {
		return
	}

	v.renderer.Render(&v.scene)
	if v.screenshotRequested {
		v.screenshotRequested = false
		v.captureScreenshot()
	}
	v.platform.SwapBuffers()

	dt := v.animator.Step()
	v.scene.Camera.AdvanceSpin(dt, v.config.SpinSpeed)

	v.countFrame()
}

func (v *Viewer) handleEvent(e controls.Event) {
	switch e.Type {
	case controls.EventQuit:
		v.running = false
	case controls.EventResize:
		v.renderer.Resize(e.Width, e.Height)
	case controls.EventAction:
		v.handleAction(e.Action)
	case controls.EventReload:
		v.reload()
	}
}

func (v *Viewer) handleAction(a controls.Action) {
	if v.dispatcher.Apply(a, v.scene.Camera, v.scene.Lights) {
		logger.Debug("action applied",
			zap.Stringer("action", a),
			zap.Float32("x", v.scene.Camera.X),
			zap.Float32("y", v.scene.Camera.Y),
			zap.Float32("z", v.scene.Camera.Z),
			zap.Float32("diffuse", v.scene.Lights.Diffuse[0]),
		)
		return
	}

	switch a {
	case controls.ActionQuit:
		v.running = false
	case controls.ActionHelp:
		if err := v.platform.ShowMessage(v.config.HelpTitle, v.config.HelpText); err != nil {
			logger.Warn("failed to show help", zap.Error(err))
		}
	case controls.ActionScreenshot:
		if v.screenshot != nil {
			v.screenshotRequested = true
		}
	case controls.ActionToggleBounds:
		v.scene.ShowBounds = !v.scene.ShowBounds
	case controls.ActionReload:
		v.reload()
	}
}

func (v *Viewer) reload() {
	if v.reloader == nil {
		return
	}
	if err := v.reloader.Reload(); err != nil {
		logger.Warn("reload failed, keeping previous assets", zap.Error(err))
		return
	}
	logger.Info("assets reloaded")
}

func (v *Viewer) captureScreenshot() {
	path, err := v.screenshot.Capture()
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) countFrame() {
	v.frameCount++
	now := v.clock.Ticks().Seconds()
	if elapsed := now - v.fpsStart; elapsed >= 1 {
		logger.Debug("fps",
			zap.Float64("fps", float64(v.frameCount)/elapsed),
			zap.Float32("spin", v.scene.Camera.Spin),
		)
		v.frameCount = 0
		v.fpsStart = now
	}
}
