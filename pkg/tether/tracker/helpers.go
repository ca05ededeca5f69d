package tracker

import (
	"path/filepath"
	"strings"
)

// separator is the host path separator, used for componentwise prefix
// comparison and reconstruction. Tracker paths are never passed through
// filepath.Join or filepath.Clean, matching the volume monitor's own
// textual-concatenation convention.
var separator = string(filepath.Separator)

// relative reports the path suffix of p below base, componentwise, and
// whether base is a strict-or-equal prefix of p. It does not consult the
// filesystem.
//
// relative(base, base) = ("", true).
// relative("/V/d1", "/V/d1/x.txt") = ("x.txt", true).
// relative("/V/d1", "/V/d1other/x.txt") = ("", false) — "d1other" is not the
// same path component as "d1", even though the raw strings share a prefix.
func relative(base, p string) (string, bool) {
	if p == base {
		return "", true
	}

	prefix := base
	if !strings.HasSuffix(prefix, separator) {
		prefix += separator
	}

	if strings.HasPrefix(p, prefix) {
		return p[len(prefix):], true
	}

	return "", false
}

// join reconstructs a full path from an ancestor and the partial suffix
// recorded against it, or returns base unchanged when partial is empty (the
// tracked entry was itself the renamed/moved path).
func join(base, partial string) string {
	if partial == "" {
		return base
	}

	prefix := base
	if !strings.HasSuffix(prefix, separator) {
		prefix += separator
	}

	return prefix + partial
}
