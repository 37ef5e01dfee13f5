package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

// FileWatcher reloads the store when the settings file is edited outside
// this process (the settings dialog writes the same file).
type FileWatcher struct {
	store  *ViperStore
	logger logger.Logger
	fw     *fsnotify.Watcher
	done   chan struct{}
}

// NewFileWatcher creates a watcher bound to the store's settings file.
func NewFileWatcher(store *ViperStore, logger logger.Logger) *FileWatcher {
	return &FileWatcher{store: store, logger: logger, done: make(chan struct{})}
}

// Watch reloads the store and invokes onChange after every write to the
// settings file, until the context is cancelled or Stop is called. The
// directory is watched rather than the file so atomic rename-replace
// writes keep being observed.
func (w *FileWatcher) Watch(ctx context.Context, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fw = fw

	dir := filepath.Dir(w.store.Path())
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return err
	}

	go func() {
		defer fw.Close()
		target := filepath.Clean(w.store.Path())
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := w.store.Reload(); err != nil {
					w.logger.Warn(ctx, "settings reload failed",
						types.Field{Key: "error", Value: err.Error()})
					continue
				}
				w.logger.Info(ctx, "settings reloaded after external edit",
					types.Field{Key: "path", Value: target})
				if onChange != nil {
					onChange()
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn(ctx, "settings watch error",
					types.Field{Key: "error", Value: err.Error()})
			}
		}
	}()

	return nil
}

// Stop ends the watch.
func (w *FileWatcher) Stop() error {
	close(w.done)
	return nil
}
