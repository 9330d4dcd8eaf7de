// Package watcher provides debounced watching of slot files in a data
// directory, so a running UI sees writes made by other processes.
package watcher

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/twiced-technology-gmbh/tasklist/internal/slot"
)

// debounceDelay is the time to wait after the last file event before triggering
// a callback. This coalesces the temp-file and rename events of one slot write
// into a single notification.
const debounceDelay = 100 * time.Millisecond

// Watcher watches a data directory for changes to a set of slot keys and
// invokes a callback with the keys that changed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	keys     []string
	mu       sync.Mutex
	timer    *time.Timer
	pending  map[string]struct{}
	delay    time.Duration
	callback func(keys []string)
}

// New creates a Watcher on dir for the given slot keys.
func New(dir string, keys []string, callback func(keys []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsw:      fsw,
		keys:     keys,
		pending:  make(map[string]struct{}),
		delay:    debounceDelay,
		callback: callback,
	}, nil
}

// Run starts the watch loop. It blocks until the context is canceled.
// Errors from the underlying watcher are passed to the optional errFn callback.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// Only react to meaningful operations.
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			key, ok := slot.KeyOf(event.Name)
			if !ok || !slices.Contains(w.keys, key) {
				continue
			}
			w.debounce(key)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) debounce(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[key] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	keys := make([]string, 0, len(w.pending))
	for k := range w.pending {
		keys = append(keys, k)
	}
	clear(w.pending)
	w.mu.Unlock()

	if len(keys) == 0 {
		return
	}
	slices.Sort(keys)
	w.callback(keys)
}
