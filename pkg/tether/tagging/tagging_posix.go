// +build !windows

package tagging

import (
	"errors"

	"golang.org/x/sys/unix"
)

// xattrName is the extended attribute used to store a file's identifier.
const xattrName = "user.dd_tag"

// writeTag stores id in the file's user.dd_tag extended attribute. If the
// underlying filesystem doesn't support extended attributes, it falls back
// to a shadow sidecar file written atomically.
func writeTag(path, id string) error {
	err := unix.Lsetxattr(path, xattrName, []byte(id), 0)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EOPNOTSUPP) {
		return writeShadowTag(path, id)
	}
	return err
}

// readTag reads the identifier from the file's user.dd_tag extended
// attribute, falling back to the shadow sidecar file if the filesystem
// doesn't support extended attributes or no attribute is present there but
// a shadow file exists.
func readTag(path string) (string, bool, error) {
	buffer := make([]byte, 64)
	n, err := unix.Lgetxattr(path, xattrName, buffer)
	if err == nil {
		return string(buffer[:n]), true, nil
	}
	if errors.Is(err, unix.ENODATA) {
		return readShadowTag(path)
	}
	if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EOPNOTSUPP) {
		return readShadowTag(path)
	}
	return "", false, err
}
