package tether

import (
	"os"
)

// DevelopmentModeEnabled controls whether or not development mode is
// enabled. It is set automatically based on the TETHER_DEVELOPMENT
// environment variable. The daemon command consults it to relax the
// singleton-daemon lock into a warning rather than a hard failure, easing
// local testing where a previous daemon may still be shutting down.
var DevelopmentModeEnabled bool

func init() {
	DevelopmentModeEnabled = os.Getenv("TETHER_DEVELOPMENT") == "1"
}
