// Package watch reports debounced change notifications for a project tree.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts such as editor save sequences.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches every non-hidden directory under a root.
type Watcher struct {
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	events   chan struct{}
	ignored  map[string]bool
	logger   *zap.Logger
}

// New registers root and its non-hidden subdirectories. Directories created
// later are added as they appear.
func New(root string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// Events carry resolved paths, so a symlinked root is resolved up front.
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		root:     resolved,
		debounce: debounce,
		fsw:      fsw,
		events:   make(chan struct{}, 1),
		ignored:  make(map[string]bool),
		logger:   logger,
	}
	if err := w.addTree(resolved); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn("Skipping unwatchable path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", zap.String("directory", path), zap.Error(err))
		}
		return nil
	})
}

// Ignore suppresses notifications for path, such as a file the caller
// writes on every change. It must be called before Run.
func (w *Watcher) Ignore(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.ignored[abs] = true
	// The file may not exist yet, so only its directory is resolved.
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		w.ignored[filepath.Join(dir, filepath.Base(abs))] = true
	}
}

// Close releases the watcher without running it.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Events delivers one value per debounced burst of changes.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Run forwards filesystem changes until ctx ends or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	// Reset never delivers a stale tick on go1.23+ timers.
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if isHidden(w.root, ev.Name) || w.isIgnored(ev.Name) {
				continue
			}
			w.logger.Debug("Filesystem change", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if ev.Has(fsnotify.Create) {
				if err := w.addTree(ev.Name); err != nil {
					w.logger.Debug("Created path is not a watchable directory", zap.String("path", ev.Name))
				}
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", zap.Error(err))
			return fmt.Errorf("file watcher failed: %w", err)
		}
	}
}

func (w *Watcher) isIgnored(path string) bool {
	abs, err := filepath.Abs(path)
	return err == nil && w.ignored[abs]
}

// isHidden reports whether any segment of path below root starts with a dot.
func isHidden(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
