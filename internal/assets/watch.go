package assets

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeviewer/internal/logger"
)

// Watcher reports changes to a fixed set of files. The parent directories are
// watched so editors that save by replacing the file are still noticed.
type Watcher struct {
	fs    *fsnotify.Watcher
	files map[string]bool
}

// NewWatcher starts watching the given files.
func NewWatcher(files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{fs: fw, files: make(map[string]bool)}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	logger.Info("watching assets", zap.Int("files", len(w.files)), zap.Int("dirs", len(dirs)))
	return w, nil
}

// Poll drains pending notifications without blocking and reports whether any
// watched file was written or created since the last call.
func (w *Watcher) Poll() bool {
	changed := false
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return changed
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if abs, err := filepath.Abs(ev.Name); err == nil && w.files[abs] {
				logger.Debug("asset changed", zap.String("path", abs), zap.Stringer("op", ev.Op))
				changed = true
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return changed
			}
			logger.Warn("asset watcher error", zap.Error(err))
		default:
			return changed
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
