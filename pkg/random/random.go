package random

import (
	"crypto/rand"
	"fmt"
)

// CollisionResistantLength is the number of random bytes used throughout
// this module whenever collision-resistance (rather than a specific fixed
// size) is the only requirement, such as for correlation identifiers.
const CollisionResistantLength = 32

// New returns a byte slice of the specified length with cryptographically
// random conents.
func New(length int) ([]byte, error) {
	// Create the buffer.
	result := make([]byte, length)

	// Read random data.
	if _, err := rand.Read(result[:]); err != nil {
		return nil, fmt.Errorf("unable to read random data: %w", err)
	}

	// Success.
	return result, nil
}
