package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tetherfs/tether/cmd"
	"github.com/tetherfs/tether/pkg/daemon"
	"github.com/tetherfs/tether/pkg/logging"
	"github.com/tetherfs/tether/pkg/tether"
	"github.com/tetherfs/tether/pkg/tether/config"
	"github.com/tetherfs/tether/pkg/tether/ipcserver"
	"github.com/tetherfs/tether/pkg/tether/registry"
)

func daemonMain(command *cobra.Command, arguments []string) error {
	// Acquire the daemon lock to enforce the singleton-daemon invariant. In
	// development mode, a failure to acquire it is downgraded to a warning
	// so that a daemon can be restarted before a prior instance has finished
	// releasing the lock.
	lock, err := daemon.AcquireLock(logging.RootLogger)
	if err != nil {
		if !tether.DevelopmentModeEnabled {
			return fmt.Errorf("unable to acquire daemon lock (is a daemon already running?): %w", err)
		}
		logging.RootLogger.Warnf("continuing without the daemon lock in development mode: %v", err)
	} else {
		defer lock.Release()
	}

	logFile, err := daemon.OpenLog()
	if err != nil {
		return fmt.Errorf("unable to open daemon log: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(io.MultiWriter(os.Stderr, logFile))

	path, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("unable to compute configuration path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}
	if tether.DebugEnabled {
		logging.SetLevel(logging.LevelDebug)
	} else {
		logging.SetLevel(cfg.LogLevel)
	}

	reg := registry.New()

	listener, err := daemon.NewListener(logging.RootLogger)
	if err != nil {
		return fmt.Errorf("unable to create daemon listener: %w", err)
	}
	defer listener.Close()

	go func() {
		if err := ipcserver.ServeSocket(reg, listener); err != nil {
			logging.RootLogger.Warnf("socket server terminated: %v", err)
		}
	}()

	stop := make(chan struct{})
	go pollLoop(reg, cfg.PollInterval, stop)
	defer close(stop)

	// Serve the stdio transport on the main goroutine: when the host that
	// spawned this process as a child closes stdin, the daemon exits.
	return ipcserver.Serve(reg, os.Stdin, os.Stdout)
}

// pollLoop drives the registry's tick from a single dedicated goroutine on
// a fixed interval, matching the "host drives tick from a dedicated polling
// thread or timer" requirement.
func pollLoop(reg *registry.Registry, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			reg.Tick()
		case <-stop:
			return
		}
	}
}

var daemonCommand = &cobra.Command{
	Use:   "daemon",
	Short: "Run the tether daemon, serving the command surface over stdio and the local socket",
	Run:   cmd.Mainify(daemonMain),
}

func init() {
	flags := daemonCommand.Flags()
	flags.SortFlags = false
}
