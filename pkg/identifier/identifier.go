// Package identifier generates collision-resistant correlation identifiers.
// These are distinct from file identifiers (which are version-1 UUIDs tagged
// directly onto files): correlation identifiers never touch disk and exist
// only to let log lines refer to a particular watch session, volume monitor,
// or accepted IPC connection.
package identifier

import (
	"errors"
	"strings"

	"github.com/tetherfs/tether/pkg/encoding"
	"github.com/tetherfs/tether/pkg/random"
)

const (
	// PrefixWatch is the prefix used for watcher-boot correlation
	// identifiers.
	PrefixWatch = "wtch"
	// PrefixVolume is the prefix used for volume monitor identifiers.
	PrefixVolume = "volm"
	// PrefixCommand is the prefix used for the identifiers assigned to
	// accepted IPC connections.
	PrefixCommand = "cmmd"

	// requiredPrefixLength is the required length for identifier prefixes.
	requiredPrefixLength = 4
	// collisionResistantLength is the number of random bytes needed to ensure
	// collision-resistance in an identifier.
	collisionResistantLength = random.CollisionResistantLength
	// targetBase62Length is the target length for the Base62-encoded portion
	// of the identifier. This is set to the maximum possible length that a
	// byte array of collisionResistantLength bytes will take to encode in
	// Base62 encoding. This length can be computed for n bytes using the
	// formula ceil(n*8*ln(2)/ln(62))).
	targetBase62Length = 43
)

// IsValid (below) checks an identifier's shape by explicit character
// scanning rather than a regular expression, since the shape of an
// identifier is fixed and simple.

// New generates a new collision-resistant identifier with the specified
// prefix. The prefix should have a length of requiredPrefixLength and consist
// only of lowercase letters.
func New(prefix string) (string, error) {
	// Ensure that the prefix length is correct.
	if len(prefix) != requiredPrefixLength {
		return "", errors.New("incorrect prefix length")
	}

	// Ensure that each prefix character is allowed.
	for _, r := range prefix {
		if !('a' <= r && r <= 'z') {
			return "", errors.New("invalid prefix character")
		}
	}

	// Create the random value.
	value, err := random.New(collisionResistantLength)
	if err != nil {
		return "", err
	}

	// Encode the random value using a Base62 encoding scheme. As a sanity
	// check, ensure that the encoded value doesn't exceed the target length.
	encoded := encoding.EncodeBase62(value)
	if len(encoded) > targetBase62Length {
		panic("encoded random data length longer than expected")
	}

	// Create a string builder.
	builder := &strings.Builder{}

	// Add the identifier prefix and separator.
	builder.WriteString(prefix)
	builder.WriteRune('_')

	// If the encoded value has a length less than the target length, then
	// left-pad it with 0s. Actually, we technically pad it using whatever the
	// zero value is in our Base62 alphabet, but that happens to be '0'.
	for i := targetBase62Length - len(encoded); i > 0; i-- {
		builder.WriteByte(encoding.Base62Alphabet[0])
	}

	// Write the encoded value.
	builder.WriteString(encoded)

	// Success.
	return builder.String(), nil
}

// IsValid determines whether or not a string has the shape of a valid
// identifier: four lowercase letters, an underscore, and exactly
// targetBase62Length alphanumeric characters.
func IsValid(value string) bool {
	if len(value) != requiredPrefixLength+1+targetBase62Length {
		return false
	}
	for i := 0; i < requiredPrefixLength; i++ {
		if c := value[i]; c < 'a' || c > 'z' {
			return false
		}
	}
	if value[requiredPrefixLength] != '_' {
		return false
	}
	for i := requiredPrefixLength + 1; i < len(value); i++ {
		c := value[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
