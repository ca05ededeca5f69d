package locking

import (
	"os"
	"testing"
)

// TestLockerFailOnDirectory tests that a locker creation fails for a directory.
func TestLockerFailOnDirectory(t *testing.T) {
	if _, err := NewLocker(t.TempDir(), 0600); err == nil {
		t.Fatal("creating a locker on a directory path succeeded")
	}
}

// TestLockerCycle tests the lifecycle of a Locker.
func TestLockerCycle(t *testing.T) {
	// Create a temporary file and defer its removal.
	lockfile, err := os.CreateTemp("", "tether_filesystem_lock")
	if err != nil {
		t.Fatal("unable to create temporary lock file:", err)
	} else if err = lockfile.Close(); err != nil {
		t.Error("unable to close temporary lock file:", err)
	}
	defer os.Remove(lockfile.Name())

	// Create a locker.
	locker, err := NewLocker(lockfile.Name(), 0600)
	if err != nil {
		t.Fatal("unable to create locker:", err)
	}

	// Attempt to acquire the lock.
	if err := locker.Lock(true); err != nil {
		t.Fatal("unable to acquire lock:", err)
	}

	// Verify that the lock state is correct.
	if !locker.Held() {
		t.Error("lock incorrectly reported as unlocked")
	}

	// Attempt to release the lock.
	if err := locker.Unlock(); err != nil {
		t.Fatal("unable to release lock:", err)
	}

	// Attempt to close the locker.
	if err := locker.Close(); err != nil {
		t.Fatal("unable to close locker:", err)
	}
}

// TestLockerDuplicateFail tests that a second, non-blocking lock attempt on
// the same file fails while the first locker still holds the lock.
func TestLockerDuplicateFail(t *testing.T) {
	// Create a temporary file and defer its removal.
	lockfile, err := os.CreateTemp("", "tether_filesystem_lock")
	if err != nil {
		t.Fatal("unable to create temporary lock file:", err)
	} else if err = lockfile.Close(); err != nil {
		t.Error("unable to close temporary lock file:", err)
	}
	defer os.Remove(lockfile.Name())

	// Create a locker for the file and acquire the lock.
	first, err := NewLocker(lockfile.Name(), 0600)
	if err != nil {
		t.Fatal("unable to create locker:", err)
	} else if err = first.Lock(false); err != nil {
		t.Fatal("unable to acquire lock:", err)
	}
	defer func() {
		first.Unlock()
		first.Close()
	}()

	// Create a second locker for the same file and ensure that a
	// non-blocking acquisition attempt fails.
	second, err := NewLocker(lockfile.Name(), 0600)
	if err != nil {
		t.Fatal("unable to create second locker:", err)
	}
	defer second.Close()
	if err := second.Lock(false); err == nil {
		t.Error("second non-blocking lock acquisition succeeded unexpectedly")
	}
}
