// Package registry coordinates the two process-wide tables at the core of
// the system: the file-tracker table and the volume-monitor table, with the
// documented lock order (volume-monitor table, then individual monitor,
// then file-tracker table) and the weak-referenced sharing of volume
// monitors across file trackers.
package registry

import (
	"fmt"
	"path/filepath"
	"sync"
	"weak"

	"github.com/tetherfs/tether/pkg/logging"
	"github.com/tetherfs/tether/pkg/tether/tagging"
	"github.com/tetherfs/tether/pkg/tether/tracker"
	"github.com/tetherfs/tether/pkg/tether/volume"
)

var logger = logging.RootLogger.Sublogger("registry")

// trackerEntry pairs a file tracker with the strong reference it holds on
// its volume monitor, so unregister can release that reference.
type trackerEntry struct {
	tracker *tracker.Tracker
	monitor *volume.Monitor
}

// Registry is the process-wide coordination point for file trackers and
// volume monitors. The zero value is not usable; construct with New.
type Registry struct {
	volumesMu sync.Mutex
	volumes   map[string]weak.Pointer[volume.Monitor]

	trackersMu sync.Mutex
	trackers   map[string]*trackerEntry
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		volumes:  make(map[string]weak.Pointer[volume.Monitor]),
		trackers: make(map[string]*trackerEntry),
	}
}

// volumeRoot computes the topmost ancestor of path by walking parent links
// to the top, matching the glossary's definition of volume root (the drive
// or mount-point label).
func volumeRoot(path string) string {
	if vol := filepath.VolumeName(path); vol != "" {
		return vol + string(filepath.Separator)
	}

	dir := path
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// acquireVolume returns the volume monitor for root, upgrading an existing
// weak entry if one is live, or booting a fresh monitor and installing a
// new weak entry otherwise. The returned monitor has already had Acquire
// called on behalf of the caller.
func (r *Registry) acquireVolume(root string) (*volume.Monitor, error) {
	r.volumesMu.Lock()
	defer r.volumesMu.Unlock()

	if wp, ok := r.volumes[root]; ok {
		if m := wp.Value(); m != nil && !m.Closed() {
			m.Acquire()
			return m, nil
		}
		delete(r.volumes, root)
	}

	m, err := volume.Boot(root)
	if err != nil {
		return nil, err
	}
	m.Acquire()
	r.volumes[root] = weak.Make(m)

	return m, nil
}

// RegisterFile tags path, obtains or creates the volume monitor for its
// volume root, and inserts a new Certain tracker. It returns the freshly
// minted identifier.
func (r *Registry) RegisterFile(path string) (string, error) {
	id, err := tagging.Tag(path)
	if err != nil {
		return "", fmt.Errorf("unable to tag file: %w", err)
	}

	root := volumeRoot(path)
	monitor, err := r.acquireVolume(root)
	if err != nil {
		return "", fmt.Errorf("unable to obtain volume monitor for %s: %w", root, err)
	}

	t := tracker.New(id, path, tagging.GetTag)

	r.trackersMu.Lock()
	r.trackers[id] = &trackerEntry{tracker: t, monitor: monitor}
	r.trackersMu.Unlock()

	logger.Debugf("registered %s as %s under volume %s", path, id, root)

	return id, nil
}

// UnregisterFile removes the tracker for id. If this drops the last strong
// reference to its volume monitor, the monitor is shut down immediately;
// its weak entry is pruned on the next tick.
func (r *Registry) UnregisterFile(id string) {
	r.trackersMu.Lock()
	entry, ok := r.trackers[id]
	delete(r.trackers, id)
	r.trackersMu.Unlock()

	if !ok {
		return
	}

	if entry.monitor.Release() {
		if err := entry.monitor.Shutdown(); err != nil {
			logger.Warnf("error shutting down volume monitor for %s: %v", entry.monitor.Root, err)
		}
	}

	logger.Debugf("unregistered %s", id)
}

// GetTrackerState returns a snapshot of the tracker's current state, or
// false if no tracker is registered under id.
func (r *Registry) GetTrackerState(id string) (tracker.State, bool) {
	r.trackersMu.Lock()
	defer r.trackersMu.Unlock()

	entry, ok := r.trackers[id]
	if !ok {
		return tracker.State{}, false
	}
	return entry.tracker.State(), true
}

// DebugHistory returns the tracker's recent transition history, or false if
// no tracker is registered under id. This is a purely diagnostic,
// supplementary operation with no effect on reconciliation.
func (r *Registry) DebugHistory(id string) ([]string, bool) {
	r.trackersMu.Lock()
	defer r.trackersMu.Unlock()

	entry, ok := r.trackers[id]
	if !ok {
		return nil, false
	}
	return entry.tracker.DebugHistory(), true
}

// Tick advances every live volume monitor and then applies the resulting
// events to every registered file tracker. It is the atomic reconciliation
// unit: after it returns, every tracker's state reflects all events
// available from its watcher at the moment of the call.
//
// Locking follows the documented global order: the volume-monitor table is
// acquired and released first, then the file-tracker table — never the
// reverse — so a concurrent RegisterFile/UnregisterFile can never deadlock
// against a concurrent Tick.
func (r *Registry) Tick() {
	live := r.tickVolumes()

	r.trackersMu.Lock()
	defer r.trackersMu.Unlock()

	for _, entry := range r.trackers {
		if !live[entry.monitor] {
			continue
		}
		entry.tracker.Apply(entry.monitor.Events())
	}
}

// tickVolumes upgrades every weak entry, ticks each live monitor, prunes
// dead entries, and returns the set of monitors that ticked successfully
// this round.
func (r *Registry) tickVolumes() map[*volume.Monitor]bool {
	r.volumesMu.Lock()
	defer r.volumesMu.Unlock()

	live := make(map[*volume.Monitor]bool, len(r.volumes))

	for root, wp := range r.volumes {
		m := wp.Value()
		if m == nil || m.Closed() {
			delete(r.volumes, root)
			continue
		}

		if err := m.Tick(); err != nil {
			logger.Warnf("tick failed for volume %s: %v", root, err)
			continue
		}

		live[m] = true
	}

	return live
}
