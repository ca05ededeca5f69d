package daemon

import (
	"fmt"
	"io"
	"os"
)

// OpenLog opens the daemon log file for writing, creating it if necessary.
// The caller is responsible for closing the returned writer. Log lines are
// always written here (and to standard error), never to standard output,
// since the daemon's stdio transport reserves standard output for the JSON
// command surface.
func OpenLog() (io.WriteCloser, error) {
	// Compute the log file path.
	path, err := logPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine daemon log path: %w", err)
	}

	// Open the log.
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
}
