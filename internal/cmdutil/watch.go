package cmdutil

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch runs fn once immediately, then blocks watching path's
// containing directory (editors replace files via
// rename-into-place, which a direct file watch misses) and re-runs fn on
// every write/create/rename event naming path, never overlapping two
// runs. It returns an error only when the watcher cannot be set up, and
// nil once the watcher's channels close; errors reported by the watcher
// and non-nil errors from fn are logged and watching continues.
func Watch(logger *slog.Logger, path string, fn func() error) error {
	if err := fn(); err != nil {
		logger.Error("run failed", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cmdutil: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("cmdutil: watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Info("input changed, re-running", "file", event.Name)
			if err := fn(); err != nil {
				logger.Error("run failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
