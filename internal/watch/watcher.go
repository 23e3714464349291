// Package watch re-runs an action whenever a single source file changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Handler is called with the watched path after each debounced change.
type Handler func(path string) error

// Event records one handled change.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // "processed" or "error"
	Error     string    `json:"error,omitempty"`
}

// Config configures a Watcher.
type Config struct {
	// Path is the file to watch.
	Path string
	// Debounce is how long to wait after the last event before running the handler.
	Debounce time.Duration
}

// Watcher monitors one file and runs its handler after the file is written.
type Watcher struct {
	Config  Config
	Handler Handler
	Logger  *logrus.Entry

	mu      sync.Mutex
	runMu   sync.Mutex
	events  []Event
	timer   *time.Timer
	watcher *fsnotify.Watcher
	target  string
}

// New creates a Watcher for cfg.Path. The parent directory is watched so that
// editors replacing the file on save are still seen.
func New(cfg Config, handler Handler) (*Watcher, error) {
	target, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", cfg.Path, err)
	}
	if _, err := os.Stat(target); err != nil {
		return nil, fmt.Errorf("could not watch %s: %w", cfg.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}

	return &Watcher{
		Config:  cfg,
		Handler: handler,
		Logger:  logrus.WithField("watch", cfg.Path),
		watcher: fsw,
		target:  target,
	}, nil
}

// Start watches until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.target)
	if err := w.watcher.Add(dir); err != nil {
		w.watcher.Close()
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}

	w.Logger.Debug("watching for changes")

	for {
		select {
		case <-ctx.Done():
			w.Logger.Debug("stopping watcher")
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.WithError(err).Warn("watch error")
		}
	}
}

// Close releases the underlying watcher without starting it.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Only process create and write events
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path, err := filepath.Abs(event.Name)
	if err != nil || path != w.target {
		return
	}

	// Debounce: editors and Excel itself write in several bursts
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	op := event.Op.String()
	w.timer = time.AfterFunc(w.Config.Debounce, func() {
		w.process(op)
	})
	w.mu.Unlock()
}

func (w *Watcher) process(operation string) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	evt := Event{
		Time:      time.Now(),
		Path:      w.Config.Path,
		Operation: operation,
		Status:    "processed",
	}

	if w.Handler != nil {
		if err := w.Handler(w.Config.Path); err != nil {
			evt.Status = "error"
			evt.Error = err.Error()
			w.Logger.WithError(err).Error("run failed")
		} else {
			w.Logger.WithField("op", operation).Info("run complete")
		}
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}

// Events returns all recorded events.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.events))
	copy(events, w.events)
	return events
}
