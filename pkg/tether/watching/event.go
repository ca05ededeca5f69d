// Package watching adapts an external native file-system watcher into the
// typed boot/tick/peek/pop/shutdown contract the rest of the tracker
// expects. The out-of-scope native watcher collaborator is satisfied here by
// github.com/fsnotify/fsnotify rather than a hand-rolled cgo/syscall backend
// per volume-monitoring platform.
package watching

// Action identifies the kind of change a raw event represents.
type Action int

// The five canonical actions a volume monitor can observe, matching the
// watcher adapter contract.
const (
	Added Action = iota + 1
	Removed
	Modified
	RenamedOld
	RenamedNew
)

// String renders the action name for logging.
func (a Action) String() string {
	switch a {
	case Added:
		return "Added"
	case Removed:
		return "Removed"
	case Modified:
		return "Modified"
	case RenamedOld:
		return "RenamedOld"
	case RenamedNew:
		return "RenamedNew"
	default:
		return "Unknown"
	}
}

// Event is a single raw, volume-relative file-system change. Path is the
// absolute path with exactly the root prefix removed (it starts with a
// separator only when root does not end in one), so that the volume monitor
// can rewrite it to absolute by plain concatenation with root. The volume
// monitor performs that rewrite before publishing events to file trackers.
type Event struct {
	Action Action
	Path   string
}
