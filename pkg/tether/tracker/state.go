package tracker

// Kind identifies which of the three reconciliation states a tracker
// currently occupies.
type Kind int

const (
	// Certain means the tracker's path is confirmed current: a fresh
	// get_tag at Path would return ID.
	Certain Kind = iota + 1
	// Renaming means an ancestor of Path (possibly Path itself) was
	// observed renamed away, and
	// Partial records the suffix to look for once the matching arrival is
	// observed.
	Renaming
	// Moving means an ancestor of Path (possibly Path itself) was removed,
	// and Partial records the suffix to look for once a matching addition
	// is observed, potentially under a different parent entirely.
	Moving
)

// String renders the state kind name for logging and debug history.
func (k Kind) String() string {
	switch k {
	case Certain:
		return "Certain"
	case Renaming:
		return "Renaming"
	case Moving:
		return "Moving"
	default:
		return "Unknown"
	}
}

// State is a snapshot of a tracker's reconciliation state. Path is
// meaningful only when Kind is Certain; Partial is meaningful only when Kind
// is Renaming or Moving.
type State struct {
	ID      string
	Kind    Kind
	Path    string
	Partial string
}
