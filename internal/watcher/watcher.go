// Package watcher triggers a callback when any watched input changes.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of writes (editors often write twice)
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches files and directories for changes. A change to a watched
// file, or to any file inside a watched directory, fires onChange once per
// debounce window.
type Watcher struct {
	paths    []string
	onChange func()
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a new watcher
func New(paths []string, onChange func(), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		paths:    paths,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger,
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until the context is cancelled or the watcher fails
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	watched := make(map[string]bool)

	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}

		// Watch the parent of a file so replacements (rename over) are seen
		dir := filepath.Dir(abs)
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dirs[abs] = true
			dir = abs
		} else {
			files[abs] = true
		}

		if !watched[dir] {
			if err := fw.Add(dir); err != nil {
				w.logger.Warn("failed to watch directory", "dir", dir, "error", err)
				continue
			}
			watched[dir] = true
		}
		w.logger.Info("watching for changes", "path", abs)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if !files[abs] && !dirs[filepath.Dir(abs)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				w.logger.Info("input changed", "path", abs)
				w.onChange()
			})
			mu.Unlock()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			stop()
			return ctx.Err()
		}
	}
}
