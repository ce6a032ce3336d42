// Package watch reruns a generation whenever one of its input files changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/example/classgen/internal/errors"
	"github.com/example/classgen/internal/logging"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// RunFunc is one complete generation run.
type RunFunc func(ctx context.Context) error

// Watcher watches a fixed set of files.
type Watcher struct {
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period between the last change event and the
// rerun.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New creates a Watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run calls fn once, then again after every debounced change to one of
// paths, until ctx is done. Runs are sequential and never overlap. A failed
// run is logged and the watch continues.
//
// Parent directories are watched rather than the files themselves, so
// editors that save by rename keep triggering.
func (w *Watcher) Run(ctx context.Context, paths []string, fn RunFunc) error {
	if len(paths) == 0 {
		return errors.WithHint(errors.New("nothing to watch"), "--watch needs a --spec-file or at least one --baseclass")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer fsw.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve %s", p)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	logging.Logger.Infow("watching for changes", "files", len(targets))
	w.runOnce(ctx, fn)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logging.Logger.Debugw("input changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.Logger.Warnw("file watcher error", "error", err)

		case <-fire:
			fire = nil
			w.runOnce(ctx, fn)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, fn RunFunc) {
	if err := fn(ctx); err != nil && ctx.Err() == nil {
		logging.Logger.Errorw("generation failed", "error", err)
	}
}
