// Package tracker implements the per-file reconciliation state machine: the
// heart of the system, reconciling a file's identity through renames and
// moves reported piecemeal (and possibly split across ticks) by a volume
// monitor's raw event stream.
package tracker

import (
	"github.com/tetherfs/tether/pkg/logging"
	"github.com/tetherfs/tether/pkg/tether/watching"
)

var logger = logging.RootLogger.Sublogger("tracker")

// historyDepth is the default number of past transitions retained per
// tracker for the supplementary debug_history command.
const historyDepth = 8

// TagReader reads the durable tag at path, reporting the tag, whether one
// is present, and any I/O error. Tag read errors are treated identically to
// a missing tag by callers, matching the reconciliation policy that
// candidate-match failures are silent and local.
type TagReader func(path string) (id string, ok bool, err error)

// Tracker reconciles the identity of a single registered file against the
// raw events published by its volume monitor.
type Tracker struct {
	// ID is the file's persistent identifier. It never changes for the
	// lifetime of the tracker.
	ID string

	state Kind
	path  string
	partial string

	getTag TagReader

	history []historyEntry
}

type historyEntry struct {
	from, to Kind
	event    watching.Action
	path     string
}

// New constructs a tracker in the initial Certain{id, path} state, as
// produced by a successful register_file.
func New(id, path string, getTag TagReader) *Tracker {
	return &Tracker{
		ID:     id,
		state:  Certain,
		path:   path,
		getTag: getTag,
	}
}

// State returns a snapshot of the tracker's current reconciliation state.
func (t *Tracker) State() State {
	switch t.state {
	case Certain:
		return State{ID: t.ID, Kind: Certain, Path: t.path}
	default:
		return State{ID: t.ID, Kind: t.state, Partial: t.partial}
	}
}

// check attempts to confirm a candidate new path: it forms full = base if
// partial is empty, or base joined with partial otherwise, reads the tag at
// full, and reports whether that tag matches the tracker's own id.
func (t *Tracker) check(base, partial string) (full string, matched bool) {
	full = join(base, partial)

	id, ok, err := t.getTag(full)
	if err != nil {
		logger.Debugf("tag read failed for %s during reconciliation: %v", full, err)
		return full, false
	}
	if !ok {
		return full, false
	}

	return full, id == t.ID
}

// record appends a transition to the debug history ring, dropping the
// oldest entry once the ring reaches historyDepth.
func (t *Tracker) record(from, to Kind, event watching.Action, path string) {
	t.history = append(t.history, historyEntry{from: from, to: to, event: event, path: path})
	if len(t.history) > historyDepth {
		t.history = t.history[len(t.history)-historyDepth:]
	}
}

// DebugHistory returns a human-readable rendering of the tracker's most
// recent transitions, oldest first. This is a purely diagnostic,
// supplementary command: it carries no effect on reconciliation.
func (t *Tracker) DebugHistory() []string {
	lines := make([]string, len(t.history))
	for i, entry := range t.history {
		lines[i] = entry.from.String() + " --[" + entry.event.String() + " " + entry.path + "]--> " + entry.to.String()
	}
	return lines
}

// Apply processes events in emission order, applying the transition table
// from the tracker's current state. Events that don't match a transition
// for the current state leave it unchanged; multiple transitions may occur
// within a single call (e.g. Certain -> Renaming -> Certain if both halves
// of a rename arrive in the same batch).
func (t *Tracker) Apply(events []watching.Event) {
	for _, event := range events {
		t.applyOne(event)
	}
}

func (t *Tracker) applyOne(event watching.Event) {
	before := t.state

	switch t.state {
	case Certain:
		switch event.Action {
		case watching.RenamedOld:
			if r, ok := relative(event.Path, t.path); ok {
				t.state = Renaming
				t.partial = r
				t.path = ""
			}
		case watching.Removed:
			if r, ok := relative(event.Path, t.path); ok {
				t.state = Moving
				t.partial = r
				t.path = ""
			}
		}
	case Renaming:
		if event.Action == watching.RenamedNew {
			if full, matched := t.check(event.Path, t.partial); matched {
				t.state = Certain
				t.path = full
				t.partial = ""
			}
		}
	case Moving:
		if event.Action == watching.Added {
			if full, matched := t.check(event.Path, t.partial); matched {
				t.state = Certain
				t.path = full
				t.partial = ""
			}
		}
	}

	if t.state != before {
		t.record(before, t.state, event.Action, event.Path)
	}
}
