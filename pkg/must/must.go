// Package must provides helpers for performing best-effort cleanup
// operations whose errors can't be usefully propagated (e.g. closing a file
// while already unwinding from another error) but are still worth logging.
package must

import (
	"io"
	"net"
	"os"

	"github.com/tetherfs/tether/pkg/logging"
)

// Close closes a closer, logging a warning on failure.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %s", err.Error())
	}
}

// Serve runs a net.Listener-backed server, logging a warning if it returns
// an error other than the normal shutdown path.
func Serve(ws interface{ Serve(net.Listener) error }, nl net.Listener, logger *logging.Logger) {
	if err := ws.Serve(nl); err != nil {
		logger.Warnf("unable to serve '%s': %s", nl.Addr(), err.Error())
	}
}

// Remove removes a path via a Remove(string) error method, logging a
// warning on failure.
func Remove(r interface{ Remove(string) error }, path string, logger *logging.Logger) {
	if err := r.Remove(path); err != nil {
		logger.Warnf("unable to remove '%s': %s", path, err.Error())
	}
}

// Unlock releases a locker, logging a warning on failure.
func Unlock(locker interface{ Unlock() error }, logger *logging.Logger) {
	if err := locker.Unlock(); err != nil {
		logger.Warnf("unable to unlock locker: %s", err.Error())
	}
}

// OSRemove removes a filesystem path, logging a warning on failure.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("unable to remove '%s': %s", name, err.Error())
	}
}
