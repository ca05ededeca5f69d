package daemon

import (
	"net"
	"os"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/tetherfs/tether/pkg/ipc"
	"github.com/tetherfs/tether/pkg/logging"
)

// RecommendedDialTimeout is the recommended timeout to use when dialing the
// daemon IPC endpoint from a CLI client.
const RecommendedDialTimeout = 5 * time.Second

// DialTimeout attempts to establish a connection to the daemon IPC endpoint.
func DialTimeout(timeout time.Duration) (net.Conn, error) {
	// Compute the path to the daemon IPC endpoint.
	endpoint, err := IPCEndpointPath()
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute endpoint path")
	}

	// Attempt to dial.
	return ipc.DialTimeout(endpoint, timeout)
}

// NewListener attempts to create a daemon IPC listener. It must only be
// called by a process that holds the daemon lock, because it will attempt to
// remove stale IPC listeners left behind by a crashed daemon.
func NewListener(logger *logging.Logger) (net.Listener, error) {
	// Compute the path to the daemon IPC endpoint.
	endpoint, err := IPCEndpointPath()
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute endpoint path")
	}

	// Attempt to create an IPC listener. If this fails due to the endpoint
	// already existing (a pipe name record on Windows, a socket address in
	// use on POSIX), then attempt to remove the endpoint since we hold the
	// daemon lock and thus the endpoint is (or should be) stale.
	listener, err := ipc.NewListener(endpoint, logger)
	if err != nil && (os.IsExist(err) || errors.Is(err, syscall.EADDRINUSE)) {
		if removeErr := os.Remove(endpoint); removeErr == nil {
			listener, err = ipc.NewListener(endpoint, logger)
		}
	}
	return listener, err
}
