package daemon

import (
	"testing"

	"github.com/tetherfs/tether/pkg/logging"
)

// TestLockCycle tests an acquisition/release cycle of the daemon lock.
func TestLockCycle(t *testing.T) {
	// Attempt to acquire the daemon lock.
	lock, err := AcquireLock(logging.RootLogger)
	if err != nil {
		t.Fatal("unable to acquire lock:", err)
	}

	// Release the lock.
	if err := lock.Release(); err != nil {
		t.Fatal("unable to release lock:", err)
	}
}

// TestLockDuplicateFail tests that a second attempt to acquire the daemon
// lock fails while the first holder is still active.
func TestLockDuplicateFail(t *testing.T) {
	// Acquire the daemon lock and defer its release.
	lock, err := AcquireLock(logging.RootLogger)
	if err != nil {
		t.Fatal("unable to acquire lock:", err)
	}
	defer lock.Release()

	// A second acquisition attempt should fail while the first is held.
	if _, err := AcquireLock(logging.RootLogger); err == nil {
		t.Error("second lock acquisition succeeded unexpectedly")
	}
}
