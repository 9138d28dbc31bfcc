// Package assets locates asset files across a list of search roots.
package assets

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeviewer/internal/logger"
)

// Resolver maps relative asset paths onto the first root that contains them.
// Roots are searched in reverse order (last added = highest priority).
type Resolver struct {
	roots []string
	cache map[string]string
	mu    sync.RWMutex
}

// NewResolver creates a resolver with the given roots, lowest priority first.
func NewResolver(roots ...string) *Resolver {
	return &Resolver{
		roots: append([]string(nil), roots...),
		cache: make(map[string]string),
	}
}

// DefaultRoots returns the directory of the executable followed by the
// working directory, so files next to the working directory win.
func DefaultRoots() []string {
	var roots []string
	if exe, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(exe))
	}
	return append(roots, ".")
}

// AddRoot adds a search root with the highest priority.
func (r *Resolver) AddRoot(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roots = append(r.roots, dir)
	clear(r.cache)
}

// Resolve returns the path of an existing file. Absolute paths and paths
// found under no root are returned unchanged, so the caller's open reports
// the original name.
func (r *Resolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	r.mu.RLock()
	resolved, ok := r.cache[path]
	r.mu.RUnlock()
	if ok {
		return resolved
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	resolved = path
	for i := len(r.roots) - 1; i >= 0; i-- {
		candidate := filepath.Join(r.roots[i], path)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			resolved = candidate
			break
		}
	}

	logger.Debug("asset resolved", zap.String("path", path), zap.String("resolved", resolved))
	r.cache[path] = resolved
	return resolved
}
