// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeviewer/internal/controls"
	"github.com/Faultbox/cubeviewer/internal/engine/input"
	"github.com/Faultbox/cubeviewer/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	VSync     bool
}

// Window wraps the SDL2 window, its OpenGL context and the event queue.
// It is the platform the viewer loop drives.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	input     *input.Input
}

// New creates a window with a double-buffered OpenGL 4.1 core context and a
// depth buffer. Key events are translated with keys.
func New(cfg Config, keys input.Keymap) (*Window, error) {
	w := &Window{
		config: cfg,
		input:  input.New(keys),
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN)
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("resizable", cfg.Resizable),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the context and window and shuts SDL2 down.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// PollEvents drains the SDL event queue. Resize events carry the drawable
// size so they can be used as the viewport directly.
func (w *Window) PollEvents() []controls.Event {
	events := w.input.Poll()
	for i := range events {
		if events[i].Type == controls.EventResize {
			events[i].Width, events[i].Height = w.DrawableSize()
		}
	}
	return events
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// ShowMessage shows a blocking information box attached to the window.
func (w *Window) ShowMessage(title, text string) error {
	return sdl.ShowSimpleMessageBox(sdl.MESSAGEBOX_INFORMATION, title, text, w.sdlWindow)
}

// Ticks returns the time since SDL was initialized.
func (w *Window) Ticks() time.Duration {
	return time.Duration(sdl.GetTicks64()) * time.Millisecond
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}
