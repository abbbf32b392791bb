package services

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatchDebounce is the debounce window for watcher events.
const ConfigWatchDebounce = 600 * time.Millisecond

// ConfigWatchService reports changes to the configuration file.
//
// The parent directory is watched rather than the file itself so that
// editors replacing the file through a rename are still noticed.
type ConfigWatchService struct {
	Started     bool
	Waiting     bool
	Path        string
	Events      chan struct{}
	Done        chan struct{}
	Mu          sync.Mutex
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time
	logf        func(string, ...any)
}

// NewConfigWatchService creates a new ConfigWatchService for path.
func NewConfigWatchService(path string, logf func(string, ...any)) *ConfigWatchService {
	return &ConfigWatchService{
		Path: path,
		logf: logf,
	}
}

// Start initialises the watcher and starts the background goroutine.
func (w *ConfigWatchService) Start() (bool, error) {
	if w.Started || w.Path == "" {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	if err := watcher.Add(filepath.Dir(w.Path)); err != nil {
		_ = watcher.Close()
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *ConfigWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *ConfigWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *ConfigWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *ConfigWatchService) ShouldRefresh(now time.Time) bool {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < ConfigWatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal notifies listeners of watcher activity.
func (w *ConfigWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// Matches reports whether an event path refers to the watched file.
func (w *ConfigWatchService) Matches(path string) bool {
	if path == "" || w.Path == "" {
		return false
	}
	return filepath.Clean(path) == filepath.Clean(w.Path)
}

func (w *ConfigWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.Matches(event.Name) {
				continue
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("config watcher error: %v", err)
		}
	}
}

func (w *ConfigWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
