package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigWatcher = (*Watcher)(nil)

// Watcher reloads the configuration file whenever it changes on disk.
type Watcher struct {
	loader ports.ConfigLoader
	logger ports.Logger
	window time.Duration
}

// NewWatcher creates a Watcher that reloads through loader.
func NewWatcher(loader ports.ConfigLoader, logger ports.Logger) *Watcher {
	return &Watcher{
		loader: loader,
		logger: logger,
		window: DefaultDebounceWindow,
	}
}

// Watch blocks until ctx is done. The parent directory is watched rather than
// the file, so editors that save by renaming a temporary file are seen too.
// A configuration that fails to load is logged and the previous one stays
// in effect.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func(domain.Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", path)
	}

	debouncer := NewDebouncer(w.window, func() {
		cfg, err := w.loader.Load(abs)
		if err != nil {
			w.logger.Error(err)
			return
		}
		w.logger.Info("reloaded " + path)
		onChange(cfg)
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op == fsnotify.Chmod {
				continue
			}
			debouncer.Trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher: " + err.Error())
		}
	}
}
