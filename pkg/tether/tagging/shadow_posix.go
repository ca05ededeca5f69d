// +build !windows

package tagging

import (
	"fmt"
	"os"

	"github.com/tetherfs/tether/pkg/filesystem"
)

// shadowSuffix is appended to a file's path to form its shadow tag sidecar
// path, used on filesystems where extended attributes aren't supported.
const shadowSuffix = ".dd_tag"

// writeShadowTag writes id to path's shadow sidecar file using an atomic
// temp-file-plus-rename sequence, so a crash mid-write can never leave a
// torn tag behind.
func writeShadowTag(path, id string) error {
	if err := filesystem.WriteFileAtomic(path+shadowSuffix, []byte(id), 0600); err != nil {
		return fmt.Errorf("unable to write shadow tag: %w", err)
	}
	return nil
}

// readShadowTag reads id from path's shadow sidecar file.
func readShadowTag(path string) (string, bool, error) {
	data, err := os.ReadFile(path + shadowSuffix)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}
