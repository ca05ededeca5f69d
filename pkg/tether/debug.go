package tether

import (
	"os"
)

// DebugEnabled controls whether or not verbose debugging output is enabled.
// It is set automatically based on the TETHER_DEBUG environment variable.
var DebugEnabled bool

func init() {
	DebugEnabled = os.Getenv("TETHER_DEBUG") == "1"
}
