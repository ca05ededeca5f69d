package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// TetherDataDirectoryName is the name of the tether data directory inside
	// the user's home directory.
	TetherDataDirectoryName = ".tether"

	// TetherDaemonDirectoryName is the name of the daemon subdirectory within
	// the tether data directory.
	TetherDaemonDirectoryName = "daemon"
)

// HomeDirectory is the cached path to the current user's home directory.
var HomeDirectory string

// TetherDataDirectoryPath is the path to the tether data directory. It can be
// overridden by init functions, but should not be changed afterward. It is
// used as the base path for all tether daemon state.
var TetherDataDirectoryPath string

// init performs global initialization.
func init() {
	// Grab the current user's home directory.
	if h, err := os.UserHomeDir(); err != nil {
		panic(errors.Wrap(err, "unable to query user's home directory"))
	} else if h == "" {
		panic(errors.New("home directory path empty"))
	} else {
		HomeDirectory = h
	}

	// Compute the path to the tether data directory.
	TetherDataDirectoryPath = filepath.Join(HomeDirectory, TetherDataDirectoryName)
}

// Tether computes (and optionally creates) subdirectories inside the tether
// data directory.
func Tether(create bool, pathComponents ...string) (string, error) {
	// Compute the target path.
	result := filepath.Join(TetherDataDirectoryPath, filepath.Join(pathComponents...))

	// If requested, attempt to create the tether directory and the specified
	// subpath. Also ensure that the tether data directory is hidden.
	if create {
		if err := os.MkdirAll(result, 0700); err != nil {
			return "", errors.Wrap(err, "unable to create subpath")
		} else if err := MarkHidden(TetherDataDirectoryPath); err != nil {
			return "", errors.Wrap(err, "unable to hide tether data directory")
		}
	}

	// Success.
	return result, nil
}
