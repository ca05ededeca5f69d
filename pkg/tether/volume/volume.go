// Package volume implements the per-volume singleton that owns one watcher
// and buffers a single tick's worth of raw events for every file tracker
// rooted under it.
package volume

import (
	"fmt"
	"sync/atomic"

	"github.com/tetherfs/tether/pkg/identifier"
	"github.com/tetherfs/tether/pkg/logging"
	"github.com/tetherfs/tether/pkg/tether/watching"
)

var logger = logging.RootLogger.Sublogger("volume")

// Monitor owns a watcher for a single volume root and republishes its raw
// events with volume-relative paths rewritten to absolute. At most one
// Monitor exists per distinct root at any instant; the registry enforces
// that invariant via its weak-referenced table.
type Monitor struct {
	// Root is the absolute volume label this monitor watches.
	Root string

	correlation string

	watcher *watching.Watcher

	// events holds the most recent tick's events, already rewritten to
	// absolute paths. It is replaced wholesale on each Tick, matching the
	// "transient, cleared each tick" contract.
	events []watching.Event

	// refs is the explicit strong reference count held by file trackers.
	// It supplies the deterministic shutdown the registry's weak.Pointer
	// table cannot provide on its own, since garbage collection offers no
	// synchronous finalization guarantee.
	refs int32

	// closed marks a monitor that has already been shut down. The registry
	// consults this during tick to prune a weak entry whose monitor is
	// still reachable (the Go runtime has not yet collected it) but is no
	// longer live, rather than relying on weak.Pointer.Value returning nil.
	closed int32
}

// Boot starts a fresh monitor for root. Callers normally reach this only
// through the registry, which first attempts to upgrade an existing weak
// entry before booting a new one.
func Boot(root string) (*Monitor, error) {
	correlation, err := identifier.New(identifier.PrefixVolume)
	if err != nil {
		return nil, fmt.Errorf("unable to mint volume correlation identifier: %w", err)
	}

	watcher, err := watching.Boot(root)
	if err != nil {
		return nil, fmt.Errorf("unable to boot watcher for volume %s: %w", root, err)
	}

	logger.Debugf("[%s] booted volume monitor for root %s", correlation, root)

	return &Monitor{
		Root:        root,
		correlation: correlation,
		watcher:     watcher,
	}, nil
}

// Acquire increments the monitor's strong reference count. It must be
// called once for every file tracker that comes to depend on this monitor.
func (m *Monitor) Acquire() {
	atomic.AddInt32(&m.refs, 1)
}

// Release decrements the monitor's strong reference count and reports
// whether it reached zero. Callers that observe true must shut the monitor
// down; the monitor does not shut itself down. Once shut down it reports
// Closed, and the registry drops its weak entry on the next tick or the next
// lookup of the same root.
func (m *Monitor) Release() bool {
	return atomic.AddInt32(&m.refs, -1) == 0
}

// RefCount reports the current strong reference count, for diagnostics and
// tests.
func (m *Monitor) RefCount() int32 {
	return atomic.LoadInt32(&m.refs)
}

// Tick clears the previous tick's events, advances the underlying watcher,
// and rebuilds the events list with every path rewritten to absolute by
// prepending Root. The rewrite is a plain textual concatenation — no
// filepath.Join, no separator normalization — because the watcher already
// emits paths whose separators and casing match host filesystem
// conventions.
func (m *Monitor) Tick() error {
	m.events = nil
	if err := m.watcher.Tick(); err != nil {
		return fmt.Errorf("volume %s: %w", m.Root, err)
	}

	raw := m.watcher.Drain()
	m.events = make([]watching.Event, len(raw))
	for i, event := range raw {
		m.events[i] = watching.Event{
			Action: event.Action,
			Path:   m.Root + event.Path,
		}
	}

	return nil
}

// Events returns the events captured by the most recent Tick.
func (m *Monitor) Events() []watching.Event {
	return m.events
}

// Shutdown stops the underlying watcher and releases its resources. It must
// only be called once the monitor's strong reference count has reached
// zero.
func (m *Monitor) Shutdown() error {
	logger.Debugf("[%s] shutting down volume monitor for root %s", m.correlation, m.Root)
	atomic.StoreInt32(&m.closed, 1)
	return m.watcher.Shutdown()
}

// Closed reports whether Shutdown has already been called.
func (m *Monitor) Closed() bool {
	return atomic.LoadInt32(&m.closed) == 1
}
