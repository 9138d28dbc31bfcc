package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeviewer/internal/assets"
	"github.com/Faultbox/cubeviewer/internal/config"
	"github.com/Faultbox/cubeviewer/internal/controls"
	"github.com/Faultbox/cubeviewer/internal/engine/model"
	"github.com/Faultbox/cubeviewer/internal/engine/renderer"
	"github.com/Faultbox/cubeviewer/internal/engine/texture"
	"github.com/Faultbox/cubeviewer/internal/engine/window"
	"github.com/Faultbox/cubeviewer/internal/logger"
	"github.com/Faultbox/cubeviewer/pkg/formats"
)

// assetLoader reads the configured mesh and texture.
type assetLoader struct {
	cfg      *config.Config
	resolver *assets.Resolver
	renderer *renderer.Renderer
}

func (l *assetLoader) meshPath() string {
	return l.resolver.Resolve(l.cfg.Assets.Mesh)
}

func (l *assetLoader) texturePath() string {
	return l.resolver.Resolve(l.cfg.Assets.Texture)
}

// load parses the mesh and decodes the texture. It needs no GL context.
func (l *assetLoader) load() (*model.Mesh, *texture.RGBImage, error) {
	texPath := l.texturePath()
	tex, err := texture.Load(texPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading texture: %w", err)
	}
	logger.Info("texture loaded",
		zap.String("path", texPath),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)

	meshPath := l.meshPath()
	obj, err := formats.ParseOBJFile(meshPath, l.cfg.OBJOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("loading mesh: %w", err)
	}
	mesh, err := model.Build(obj)
	if err != nil {
		return nil, nil, fmt.Errorf("building mesh %s: %w", meshPath, err)
	}
	logger.Info("mesh loaded",
		zap.String("path", meshPath),
		zap.Stringer("counts", obj.Counts()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Any("center", mesh.Bounds.Center()),
	)

	return mesh, tex, nil
}

// Reload implements viewer.Reloader.
func (l *assetLoader) Reload() error {
	mesh, tex, err := l.load()
	if err != nil {
		return err
	}
	return l.renderer.Replace(mesh, tex)
}

// watchedWindow adds a reload event whenever a watched asset changes.
type watchedWindow struct {
	*window.Window
	watcher *assets.Watcher
}

func (w watchedWindow) PollEvents() []controls.Event {
	events := w.Window.PollEvents()
	if w.watcher.Poll() {
		events = append(events, controls.Event{Type: controls.EventReload})
	}
	return events
}
