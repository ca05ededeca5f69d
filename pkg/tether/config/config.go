// Package config loads the daemon's small YAML configuration file, grounded
// in the teacher's pkg/configuration session-configuration loader but
// scoped down to the handful of settings a standalone daemon process needs:
// log level, polling interval, and the local socket path.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tetherfs/tether/pkg/daemon"
	"github.com/tetherfs/tether/pkg/encoding"
	"github.com/tetherfs/tether/pkg/filesystem"
	"github.com/tetherfs/tether/pkg/logging"
)

// defaultPollInterval is used when poll_interval is absent from the
// configuration file, matching the "500ms" default named in SPEC_FULL.md
// §5/§9.
const defaultPollInterval = 500 * time.Millisecond

// fileName is the configuration file's name under the tether data
// directory.
const fileName = "config.yml"

// raw mirrors the on-disk YAML shape. Fields are pointers so that an absent
// key is distinguishable from an explicit zero value, and unknown keys are
// rejected by encoding.LoadAndUnmarshalYAML's KnownFields(true) decoder.
type raw struct {
	LogLevel     *string `yaml:"log_level"`
	PollInterval *string `yaml:"poll_interval"`
	SocketPath   *string `yaml:"socket_path"`
}

// Config holds the daemon's resolved configuration, with defaults already
// applied. SocketPath is loaded but not consulted by the daemon: its
// listener and the CLI clients always use daemon.IPCEndpointPath.
type Config struct {
	LogLevel     logging.Level
	PollInterval time.Duration
	SocketPath   string
}

// defaultSocketPath returns the IPC endpoint path under the tether data
// directory, used when socket_path is absent from the configuration file.
func defaultSocketPath() (string, error) {
	return daemon.IPCEndpointPath()
}

// Load reads the configuration file at path, applying defaults for any
// setting it doesn't specify. A missing file is not an error: it simply
// means every setting takes its default.
func Load(path string) (*Config, error) {
	socketPath, err := defaultSocketPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine default socket path: %w", err)
	}

	cfg := &Config{
		LogLevel:     logging.LevelInfo,
		PollInterval: defaultPollInterval,
		SocketPath:   socketPath,
	}

	var r raw
	if err := encoding.LoadAndUnmarshalYAML(path, &r); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}

	if r.LogLevel != nil {
		parsed, ok := logging.NameToLevel(*r.LogLevel)
		if !ok {
			return nil, fmt.Errorf("invalid log_level %q", *r.LogLevel)
		}
		cfg.LogLevel = parsed
	}

	if r.PollInterval != nil {
		parsed, err := time.ParseDuration(*r.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll_interval %q: %w", *r.PollInterval, err)
		}
		cfg.PollInterval = parsed
	}

	if r.SocketPath != nil {
		cfg.SocketPath = *r.SocketPath
	}

	return cfg, nil
}

// DefaultPath returns the standard location of the daemon configuration
// file, ~/.tether/config.yml.
func DefaultPath() (string, error) {
	dir, err := filesystem.Tether(false)
	if err != nil {
		return "", fmt.Errorf("unable to determine tether data directory: %w", err)
	}
	return filepath.Join(dir, fileName), nil
}
