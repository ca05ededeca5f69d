package tracker

import (
	"testing"

	"github.com/tetherfs/tether/pkg/tether/watching"
)

// fakeTags is an in-memory TagReader backing store for tests, avoiding any
// dependency on real filesystem tagging.
type fakeTags map[string]string

func (f fakeTags) reader() TagReader {
	return func(path string) (string, bool, error) {
		id, ok := f[path]
		return id, ok, nil
	}
}

func TestRelative(t *testing.T) {
	cases := []struct {
		base, p string
		want    string
		ok      bool
	}{
		{"/V/a.txt", "/V/a.txt", "", true},
		{"/V/d1", "/V/d1/x.txt", "x.txt", true},
		{"/V/d1", "/V/d1other/x.txt", "", false},
		{"/V/d1", "/V/d2/x.txt", "", false},
	}
	for _, c := range cases {
		got, ok := relative(c.base, c.p)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("relative(%q, %q) = (%q, %v), want (%q, %v)", c.base, c.p, got, ok, c.want, c.ok)
		}
	}
}

// TestFileRenamedInPlace is end-to-end scenario 2 from spec.md §8.
func TestFileRenamedInPlace(t *testing.T) {
	tags := fakeTags{"/V/b.txt": "u"}
	tr := New("u", "/V/a.txt", tags.reader())

	tr.Apply([]watching.Event{
		{Action: watching.RenamedOld, Path: "/V/a.txt"},
		{Action: watching.RenamedNew, Path: "/V/b.txt"},
	})

	state := tr.State()
	if state.Kind != Certain || state.Path != "/V/b.txt" {
		t.Fatalf("expected Certain{u, /V/b.txt}, got %+v", state)
	}
}

// TestParentDirectoryRenamed is end-to-end scenario 3.
func TestParentDirectoryRenamed(t *testing.T) {
	tags := fakeTags{"/V/d2/x.txt": "u"}
	tr := New("u", "/V/d1/x.txt", tags.reader())

	tr.Apply([]watching.Event{{Action: watching.RenamedOld, Path: "/V/d1"}})
	intermediate := tr.State()
	if intermediate.Kind != Renaming || intermediate.Partial != "x.txt" {
		t.Fatalf("expected intermediate Renaming{u, x.txt}, got %+v", intermediate)
	}

	tr.Apply([]watching.Event{{Action: watching.RenamedNew, Path: "/V/d2"}})
	final := tr.State()
	if final.Kind != Certain || final.Path != "/V/d2/x.txt" {
		t.Fatalf("expected final Certain{u, /V/d2/x.txt}, got %+v", final)
	}
}

// TestMoveAcrossDirectoriesSplitAcrossTicks is end-to-end scenario 4.
func TestMoveAcrossDirectoriesSplitAcrossTicks(t *testing.T) {
	tags := fakeTags{"/V/d3/x.txt": "u"}
	tr := New("u", "/V/d1/x.txt", tags.reader())

	tr.Apply([]watching.Event{{Action: watching.Removed, Path: "/V/d1/x.txt"}})
	if state := tr.State(); state.Kind != Moving || state.Partial != "" {
		t.Fatalf("expected Moving{u, \"\"} after tick 1, got %+v", state)
	}

	tr.Apply([]watching.Event{{Action: watching.Added, Path: "/V/d3/x.txt"}})
	if state := tr.State(); state.Kind != Certain || state.Path != "/V/d3/x.txt" {
		t.Fatalf("expected Certain{u, /V/d3/x.txt} after tick 2, got %+v", state)
	}
}

// TestFalseCandidateRejected is end-to-end scenario 5.
func TestFalseCandidateRejected(t *testing.T) {
	tags := fakeTags{"/V/e/x.txt": "v"}
	tr := New("u", "", tags.reader())
	tr.state = Moving
	tr.partial = "x.txt"

	tr.Apply([]watching.Event{{Action: watching.Added, Path: "/V/e"}})

	state := tr.State()
	if state.Kind != Moving || state.Partial != "x.txt" {
		t.Fatalf("expected tracker to remain Moving{u, x.txt}, got %+v", state)
	}
}

// TestRegisterAndQuery is end-to-end scenario 1.
func TestRegisterAndQuery(t *testing.T) {
	tr := New("u", "/V/a.txt", fakeTags{}.reader())

	state := tr.State()
	if state.Kind != Certain || state.Path != "/V/a.txt" {
		t.Fatalf("expected Certain{u, /V/a.txt}, got %+v", state)
	}
}

func TestUnrelatedEventsLeaveStateUnchanged(t *testing.T) {
	tr := New("u", "/V/a.txt", fakeTags{}.reader())

	tr.Apply([]watching.Event{
		{Action: watching.Modified, Path: "/V/other.txt"},
		{Action: watching.RenamedOld, Path: "/V/unrelated"},
	})

	state := tr.State()
	if state.Kind != Certain || state.Path != "/V/a.txt" {
		t.Fatalf("expected state unchanged, got %+v", state)
	}
}

func TestIDNeverChanges(t *testing.T) {
	tags := fakeTags{"/V/b.txt": "u"}
	tr := New("u", "/V/a.txt", tags.reader())

	tr.Apply([]watching.Event{
		{Action: watching.RenamedOld, Path: "/V/a.txt"},
		{Action: watching.RenamedNew, Path: "/V/b.txt"},
	})

	if tr.ID != "u" {
		t.Fatalf("expected id to remain u, got %s", tr.ID)
	}
}

func TestDebugHistoryRecordsTransitions(t *testing.T) {
	tags := fakeTags{"/V/b.txt": "u"}
	tr := New("u", "/V/a.txt", tags.reader())

	tr.Apply([]watching.Event{
		{Action: watching.RenamedOld, Path: "/V/a.txt"},
		{Action: watching.RenamedNew, Path: "/V/b.txt"},
	})

	history := tr.DebugHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 recorded transitions, got %d: %v", len(history), history)
	}
}

func TestDebugHistoryBounded(t *testing.T) {
	tr := New("u", "/V/a.txt", func(string) (string, bool, error) { return "u", true, nil })

	path := "/V/a.txt"
	for i := 0; i < historyDepth+5; i++ {
		next := path + "x"
		tr.Apply([]watching.Event{
			{Action: watching.RenamedOld, Path: path},
			{Action: watching.RenamedNew, Path: next},
		})
		path = next
	}

	if len(tr.DebugHistory()) > historyDepth {
		t.Fatalf("expected history bounded to %d entries, got %d", historyDepth, len(tr.DebugHistory()))
	}
}
