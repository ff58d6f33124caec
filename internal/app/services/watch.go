// Package services holds background helpers of the TUI.
package services

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// TodoWatchDebounce is the minimum delay between two refreshes caused by
// watcher events.
const TodoWatchDebounce = 600 * time.Millisecond

// TodoWatchService watches the todo file and signals when it changes.
// The parent directory is watched so editors that save by rename are
// still seen.
type TodoWatchService struct {
	Started     bool
	Waiting     bool
	Path        string
	Events      chan struct{}
	Done        chan struct{}
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time

	logf func(string, ...any)
}

// NewTodoWatchService creates a watcher that logs through logf.
func NewTodoWatchService(logf func(string, ...any)) *TodoWatchService {
	return &TodoWatchService{logf: logf}
}

// Start watches path. It is a no-op when already watching the same path;
// a different path replaces the previous watch.
func (w *TodoWatchService) Start(path string) (bool, error) {
	if path == "" {
		return false, errors.New("todo watcher: empty path")
	}
	path = filepath.Clean(path)
	if w.Started && w.Path == path {
		return false, nil
	}
	w.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return false, err
	}

	w.Started = true
	w.Waiting = false
	w.Path = path
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run(watcher, path, w.Events, w.Done)
	w.debugf("todo watcher: watching %s", path)
	return true, nil
}

// Stop stops the watcher.
func (w *TodoWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel unless a wait is already pending.
func (w *TodoWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting || !w.Started {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *TodoWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh applies the debounce window.
func (w *TodoWatchService) ShouldRefresh(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < TodoWatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

func matches(path, name string) bool {
	return path != "" && name != "" && filepath.Clean(name) == path
}

func signal(events chan<- struct{}, done <-chan struct{}) {
	select {
	case <-done:
		return
	default:
	}
	select {
	case events <- struct{}{}:
	default:
	}
}

func (w *TodoWatchService) run(watcher *fsnotify.Watcher, path string, events chan<- struct{}, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !matches(path, event.Name) {
				continue
			}
			signal(events, done)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.debugf("todo watcher error: %v", err)
		}
	}
}

func (w *TodoWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
