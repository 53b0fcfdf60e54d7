package storeindex

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads ix from path whenever the file is written or replaced, until
// ctx is done. The parent directory is watched so editors that save by
// rename are picked up. A file that fails to parse leaves the index as it was.
func Watch(ctx context.Context, ix *Index, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			stores, err := LoadFile(abs)
			if err != nil {
				logger.Warn("store reload failed", slog.String("path", abs), slog.String("error", err.Error()))
				continue
			}
			ix.Replace(stores)
			logger.Info("stores reloaded", slog.String("path", abs), slog.Int("count", len(stores)))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("store watcher error", slog.String("error", err.Error()))
		}
	}
}
