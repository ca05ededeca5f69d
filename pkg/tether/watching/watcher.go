package watching

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/tetherfs/tether/pkg/logging"
)

// logger is the sublogger used for all watcher adapter operations.
var logger = logging.RootLogger.Sublogger("watcher")

// Watcher is a safe, per-root adapter over fsnotify implementing the
// boot/tick/peek/pop/shutdown contract. Its methods serialize on an internal
// mutex.
type Watcher struct {
	root string

	mu      sync.Mutex
	raw     *fsnotify.Watcher
	watched map[string]bool

	staged []Event
	cursor int

	lastError error
}

// Boot starts watching root, walking its directory tree once to register
// every subdirectory (fsnotify does not watch recursively on its own).
func Boot(root string) (*Watcher, error) {
	raw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create native watcher: %w", err)
	}

	w := &Watcher{
		root:    root,
		raw:     raw,
		watched: make(map[string]bool),
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Best-effort: skip entries we can't stat rather than aborting
			// the entire boot over one unreadable subdirectory.
			return nil
		}
		if d.IsDir() {
			w.addWatch(path)
		}
		return nil
	})
	if walkErr != nil {
		raw.Close()
		return nil, fmt.Errorf("unable to enumerate directory tree: %w", walkErr)
	}

	logger.Debugf("booted watcher for root %s", root)

	return w, nil
}

// addWatch registers path with the underlying watcher if it isn't already
// watched.
func (w *Watcher) addWatch(path string) {
	if w.watched[path] {
		return
	}
	if err := w.raw.Add(path); err != nil {
		logger.Debugf("unable to watch %s: %v", path, err)
		return
	}
	w.watched[path] = true
}

// relative converts an absolute path produced by fsnotify into a path
// relative to the watcher's root, matching the contract that the watcher
// adapter emits volume-relative paths (the volume monitor is responsible for
// rewriting them back to absolute). Only the root prefix itself is trimmed:
// a separator following it is kept (so a root without a trailing separator
// yields a value with a leading one), and the volume monitor can reconstruct
// the absolute path by plain textual concatenation of root and this value,
// with no separator insertion or path normalization of its own.
func (w *Watcher) relative(path string) string {
	return strings.TrimPrefix(path, w.root)
}

// Tick drains the OS buffer (via fsnotify's internal channels) into the
// watcher's staging area, translating fsnotify events into the canonical
// Added/Removed/Modified/RenamedOld/RenamedNew actions.
func (w *Watcher) Tick() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Reset staging; any events not yet popped by the previous tick are
	// dropped, matching the contract that events are transient per-tick.
	w.staged = w.staged[:0]
	w.cursor = 0

drain:
	for {
		select {
		case event, ok := <-w.raw.Events:
			if !ok {
				break drain
			}
			w.translate(event)
		case err, ok := <-w.raw.Errors:
			if !ok {
				break drain
			}
			w.lastError = err
		default:
			break drain
		}
	}

	if w.lastError != nil {
		err := w.lastError
		w.lastError = nil
		return fmt.Errorf("watcher failure: %w", err)
	}

	return nil
}

// translate converts a single fsnotify event into zero or more canonical
// events appended to the staging area.
func (w *Watcher) translate(event fsnotify.Event) {
	rel := w.relative(event.Name)

	switch {
	case event.Op&fsnotify.Create != 0:
		// fsnotify can't distinguish the arrival half of a rename from a
		// genuinely new path, so we emit both candidate events and let the
		// file tracker's own tag confirmation discard whichever doesn't
		// apply.
		w.staged = append(w.staged, Event{Action: RenamedNew, Path: rel})
		w.staged = append(w.staged, Event{Action: Added, Path: rel})

		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addWatch(event.Name)
		}
	case event.Op&fsnotify.Remove != 0:
		w.staged = append(w.staged, Event{Action: Removed, Path: rel})
		delete(w.watched, event.Name)
	case event.Op&fsnotify.Rename != 0:
		w.staged = append(w.staged, Event{Action: RenamedOld, Path: rel})
		delete(w.watched, event.Name)
	case event.Op&fsnotify.Write != 0:
		w.staged = append(w.staged, Event{Action: Modified, Path: rel})
	}
}

// Peek returns the next buffered event without consuming it, or false if the
// staging area is exhausted.
func (w *Watcher) Peek() (Event, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cursor >= len(w.staged) {
		return Event{}, false
	}
	return w.staged[w.cursor], true
}

// Pop discards the event most recently returned by Peek.
func (w *Watcher) Pop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cursor < len(w.staged) {
		w.cursor++
	}
}

// Drain returns (and consumes) every event currently staged, in emission
// order. This is a convenience used by the volume monitor instead of
// repeated Peek/Pop calls.
func (w *Watcher) Drain() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	remaining := w.staged[w.cursor:]
	result := make([]Event, len(remaining))
	copy(result, remaining)
	w.cursor = len(w.staged)
	return result
}

// Shutdown stops watching and releases all underlying resources. It is safe
// to call multiple times.
func (w *Watcher) Shutdown() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	logger.Debugf("shutting down watcher for root %s", w.root)

	return w.raw.Close()
}
