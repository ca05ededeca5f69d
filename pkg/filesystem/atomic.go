package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// atomicWriteTemporaryNamePrefix is the file name prefix to use for
	// intermediate temporary files used in atomic writes.
	atomicWriteTemporaryNamePrefix = TemporaryNamePrefix + "atomic-write"
)

// WriteFileAtomic writes a file to disk in an atomic fashion by using an
// intermediate temporary file that is swapped into place using a rename
// operation. It backs encoding.MarshalAndSave and the POSIX shadow-file tag
// fallback, where a torn write would otherwise corrupt a file's identity
// tag.
func WriteFileAtomic(path string, data []byte, permissions os.FileMode) error {
	// Create a temporary file in the same directory as the target so that the
	// final rename is guaranteed to stay on the same filesystem. The os
	// package already uses secure permissions for creating temporary files,
	// so we don't need to change them until after writing.
	temporary, err := os.CreateTemp(filepath.Dir(path), atomicWriteTemporaryNamePrefix)
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer os.Remove(temporary.Name())

	// Write data.
	if _, err = temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("unable to write data to temporary file: %w", err)
	}

	// Close out the file.
	if err = temporary.Close(); err != nil {
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	// Set the file's permissions.
	if err = os.Chmod(temporary.Name(), permissions); err != nil {
		return fmt.Errorf("unable to change file permissions: %w", err)
	}

	// Rename the file into place.
	if err = os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("unable to rename file into place: %w", err)
	}

	// Success.
	return nil
}
