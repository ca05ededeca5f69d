package tagging

import (
	"fmt"

	"github.com/tetherfs/tether/pkg/logging"
)

// logger is the sublogger used for all tagging operations.
var logger = logging.RootLogger.Sublogger("tagger")

// Tag mints a fresh identifier, writes it to the file's side-channel, and
// returns it. It fails if the host file system does not support the
// side-channel mechanism or if the file is unwritable.
func Tag(path string) (string, error) {
	id, err := newIdentifier()
	if err != nil {
		return "", fmt.Errorf("unable to mint identifier: %w", err)
	}

	if err := writeTag(path, id); err != nil {
		return "", fmt.Errorf("unable to write tag: %w", err)
	}

	logger.Debugf("tagged %s with %s", path, id)

	return id, nil
}

// GetTag reads the identifier from the file's side-channel. It returns
// ("", false, nil) if the side-channel is absent or unreadable — per the
// tagging contract, this is normal (tag-missing), not an error. Any read
// failure (including a missing file) is logged at Debug level and reported
// the same way, so the returned error is always nil; the error result exists
// so that GetTag matches the tracker's TagReader signature.
func GetTag(path string) (string, bool, error) {
	id, ok, err := readTag(path)
	if err != nil {
		logger.Debugf("unable to read tag for %s: %v", path, err)
		return "", false, nil
	}
	return id, ok, nil
}
