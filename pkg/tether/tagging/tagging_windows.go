package tagging

import (
	"fmt"
	"os"
)

// adsStreamName is the name of the alternate data stream used to store a
// file's identifier on NTFS volumes.
const adsStreamName = "dd_tag"

// writeTag stores id in the file's <path>:dd_tag alternate data stream. The
// os package already understands colon-qualified NTFS stream paths, so no
// additional syscalls are required.
func writeTag(path, id string) error {
	streamPath := fmt.Sprintf("%s:%s", path, adsStreamName)
	return os.WriteFile(streamPath, []byte(id), 0600)
}

// readTag reads the identifier from the file's <path>:dd_tag alternate data
// stream.
func readTag(path string) (string, bool, error) {
	streamPath := fmt.Sprintf("%s:%s", path, adsStreamName)
	data, err := os.ReadFile(streamPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}
