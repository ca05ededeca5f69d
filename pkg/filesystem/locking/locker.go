package locking

import (
	"os"

	"github.com/pkg/errors"
)

// Locker provides file locking facilities.
type Locker struct {
	// file is the underlying file object to be locked.
	file *os.File
	// held tracks whether or not this locker currently holds the lock. It is
	// only updated by successful Lock/Unlock calls, so it reflects this
	// locker's own view of the lock, not necessarily the OS-level state (e.g.
	// it is not updated if the underlying file descriptor is closed out from
	// under the locker).
	held bool
}

// NewLocker attempts to create a lock with the file at the specified path,
// creating the file if necessary. The lock is returned in an unlocked state.
func NewLocker(path string, permissions os.FileMode) (*Locker, error) {
	mode := os.O_RDWR | os.O_CREATE | os.O_APPEND
	if file, err := os.OpenFile(path, mode, permissions); err != nil {
		return nil, errors.Wrap(err, "unable to open lock file")
	} else {
		return &Locker{file: file}, nil
	}
}

// Held reports whether or not this locker currently holds the lock.
func (l *Locker) Held() bool {
	return l.held
}

// Close closes the underlying lock file. It does not release the lock; the
// caller should call Unlock first if the lock is held.
func (l *Locker) Close() error {
	return l.file.Close()
}
