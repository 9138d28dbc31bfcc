// Command cubeviewer shows a textured, lit OBJ mesh spinning in a window and
// lets the user fly around it with the keyboard.
package main

//go:generate go run ../../assets/generate.go -out ../../assets/texture.jpg

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeviewer/internal/assets"
	"github.com/Faultbox/cubeviewer/internal/config"
	"github.com/Faultbox/cubeviewer/internal/engine/camera"
	"github.com/Faultbox/cubeviewer/internal/engine/input"
	"github.com/Faultbox/cubeviewer/internal/engine/lighting"
	"github.com/Faultbox/cubeviewer/internal/engine/renderer"
	"github.com/Faultbox/cubeviewer/internal/engine/screenshot"
	"github.com/Faultbox/cubeviewer/internal/engine/window"
	"github.com/Faultbox/cubeviewer/internal/logger"
	"github.com/Faultbox/cubeviewer/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== Cube Viewer ===")

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("path", path))
		}
	}

	if err := run(cfg); err != nil {
		logger.Error("startup failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	keys, err := input.NewKeymap(cfg.Controls.Keys)
	if err != nil {
		return fmt.Errorf("key bindings: %w", err)
	}

	win, err := window.New(window.Config{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
	}, keys)
	if err != nil {
		return err
	}
	defer win.Close()

	resolver := assets.NewResolver(assets.DefaultRoots()...)
	if src := cfg.Source(); src != "" {
		// Paths in a config file are relative to that file first.
		resolver.AddRoot(filepath.Dir(src))
	}
	loader := &assetLoader{cfg: cfg, resolver: resolver}
	mesh, tex, err := loader.load()
	if err != nil {
		return err
	}

	width, height := win.DrawableSize()
	rend, err := renderer.New(renderer.Config{Width: width, Height: height}, mesh, tex)
	if err != nil {
		return err
	}
	defer rend.Close()
	loader.renderer = rend

	var platform viewer.Platform = win
	if cfg.Assets.Watch {
		watcher, err := assets.NewWatcher(loader.meshPath(), loader.texturePath())
		if err != nil {
			return err
		}
		defer watcher.Close()
		platform = watchedWindow{Window: win, watcher: watcher}
	}

	pos := cfg.Camera.Position
	scene := viewer.Scene{
		Camera: camera.New(pos[0], pos[1], pos[2]),
		Lights: &lighting.Lights{
			Ambient:  cfg.Lighting.Ambient,
			Diffuse:  cfg.Lighting.Diffuse,
			Position: cfg.Lighting.Position,
		},
	}

	shots := screenshot.New(cfg.Screenshot.Dir, cfg.Screenshot.Prefix, rend.ReadPixels)

	vcfg := viewer.DefaultConfig()
	vcfg.SpinSpeed = cfg.Camera.SpinSpeed
	vcfg.Tuning = cfg.Tuning()
	vcfg.HelpText = cfg.HelpText()

	v := viewer.New(vcfg, platform, rend, shots, win, scene)
	v.SetReloader(loader)

	v.Run()
	return nil
}
