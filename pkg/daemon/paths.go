package daemon

import (
	"fmt"
	"path/filepath"

	"github.com/tetherfs/tether/pkg/filesystem"
)

const (
	// lockName is the name of the daemon lock. It resides within the daemon
	// subdirectory of the tether data directory.
	lockName = "daemon.lock"
	// logName is the name of the daemon log file. It resides within the
	// daemon subdirectory of the tether data directory.
	logName = "daemon.log"
	// endpointName is the name of the daemon IPC endpoint. On POSIX systems
	// this is the UNIX domain socket itself; on Windows it is a small record
	// file pointing at a uniquely-named pipe. It resides within the daemon
	// subdirectory of the tether data directory.
	endpointName = "daemon.endpoint"
)

// subpath computes a subpath of the daemon subdirectory, creating the daemon
// subdirectory in the process.
func subpath(name string) (string, error) {
	// Compute the daemon root directory path and ensure it exists.
	daemonRoot, err := filesystem.Tether(true, filesystem.TetherDaemonDirectoryName)
	if err != nil {
		return "", fmt.Errorf("unable to compute daemon directory: %w", err)
	}

	// Compute the combined path.
	return filepath.Join(daemonRoot, name), nil
}

// logPath computes the path to the daemon log file, creating any
// intermediate directories as necessary.
func logPath() (string, error) {
	return subpath(logName)
}

// IPCEndpointPath computes the path to the daemon IPC endpoint (a UNIX domain
// socket on POSIX systems, or a named pipe record on Windows), creating any
// intermediate directories as necessary.
func IPCEndpointPath() (string, error) {
	return subpath(endpointName)
}
