package logging

import (
	"log"
	"os"
)

func init() {
	// Set the global logger to use standard error. Standard output is
	// reserved for the JSON command surface when the daemon is driven over
	// stdio, so logging must never land there.
	log.SetOutput(os.Stderr)
}
