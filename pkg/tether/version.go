// +build go1.10

package tether

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of tether.
	VersionMajor = 0
	// VersionMinor represents the current minor version of tether.
	VersionMinor = 1
	// VersionPatch represents the current patch version of tether.
	VersionPatch = 0
)

// Version is the formatted major.minor.patch version string, printed by the
// CLI's --version flag.
var Version string

func init() {
	Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
