package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tetherfs/tether/pkg/logging"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatal("unable to load default configuration:", err)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Errorf("expected default log level Info, got %v", cfg.LogLevel)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Errorf("expected default poll interval %v, got %v", defaultPollInterval, cfg.PollInterval)
	}
	if cfg.SocketPath == "" {
		t.Error("expected a non-empty default socket path")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	contents := "log_level: debug\npoll_interval: 250ms\nsocket_path: /tmp/custom.sock\n"
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal("unable to write test configuration:", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal("unable to load configuration:", err)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Errorf("expected log level Debug, got %v", cfg.LogLevel)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("expected poll interval 250ms, got %v", cfg.PollInterval)
	}
	if cfg.SocketPath != "/tmp/custom.sock" {
		t.Errorf("expected socket path /tmp/custom.sock, got %q", cfg.SocketPath)
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("log_level: nonsense\n"), 0600); err != nil {
		t.Fatal("unable to write test configuration:", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for an invalid log level")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("bogus_field: true\n"), 0600); err != nil {
		t.Fatal("unable to write test configuration:", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unknown configuration field")
	}
}
