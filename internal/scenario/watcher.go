package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is called once per burst of changes to the watched file.
type ChangeHandler func(ctx context.Context, path string) error

// Watcher reports changes to a single scenario file. It watches the parent
// directory so that editors which save by rename are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	delay   time.Duration
	logger  *slog.Logger
}

// NewWatcher starts watching path. Bursts of events closer together than
// debounce are coalesced into one change.
func NewWatcher(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("scenario: create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("scenario: watch %s: %w", filepath.Dir(abs), err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{watcher: w, path: abs, delay: debounce, logger: logger}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls onChange after each debounced burst of changes until ctx is done.
// Handler errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange ChangeHandler) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("scenario file event", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("scenario watcher error", "error", err)

		case <-fire:
			fire = nil
			if err := onChange(ctx, w.path); err != nil {
				w.logger.Error("scenario reload failed", "path", w.path, "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
