// Package ipcserver serves the command surface (pkg/tether/command) over
// both transports named in SPEC_FULL.md §6: newline-delimited JSON on
// stdio, and a local socket/named pipe accepting the same framing per
// connection. Dispatch itself is entirely transport-agnostic; this package
// only owns framing and connection lifecycle.
package ipcserver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/tetherfs/tether/pkg/identifier"
	"github.com/tetherfs/tether/pkg/logging"
	"github.com/tetherfs/tether/pkg/tether/command"
	"github.com/tetherfs/tether/pkg/tether/registry"
)

var logger = logging.RootLogger.Sublogger("ipcserver")

// Serve reads newline-delimited JSON requests from r and writes
// newline-delimited JSON responses to w until r is exhausted or a read
// fails. It is used directly for the stdio transport and, per-connection,
// for the local socket transport.
func Serve(reg *registry.Registry, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Command payloads are small, but allow generously for long paths
	// without silently truncating a request.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req command.Request
		if err := json.Unmarshal(line, &req); err != nil {
			if _, writeErr := fmt.Fprintf(w, `{"error":"malformed request"}`+"\n"); writeErr != nil {
				return fmt.Errorf("unable to write error response: %w", writeErr)
			}
			continue
		}

		response := executeRecovering(reg, req)
		if _, err := w.Write(append(response, '\n')); err != nil {
			return fmt.Errorf("unable to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("unable to read request stream: %w", err)
	}

	return nil
}

// executeRecovering invokes command.Execute, recovering a panic from a
// table-mutating operation only long enough to log it before exiting the
// process. Go mutexes have no poisoning concept, so a panic while a registry
// lock is held would otherwise leave it locked forever; per spec.md's own
// classification that state is unrecoverable, so the dispatch loop logs the
// panic via Logger.Error and then aborts rather than continuing to serve
// requests against a table a panicking goroutine left half-mutated.
func executeRecovering(reg *registry.Registry, req command.Request) (response json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Errorf("command dispatch panicked: %v", r))
			os.Exit(1)
		}
	}()
	return command.Execute(reg, req)
}

// ServeSocket accepts connections on listener until it is closed, serving
// each connection's command stream with Serve in its own goroutine. Each
// accepted connection is assigned a correlation identifier used only for
// log lines, so that interleaved connections are distinguishable in daemon
// logs.
func ServeSocket(reg *registry.Registry, listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return fmt.Errorf("unable to accept connection: %w", err)
		}

		correlation, idErr := identifier.New(identifier.PrefixCommand)
		if idErr != nil {
			correlation = "unknown"
		}

		go func(conn net.Conn, correlation string) {
			defer conn.Close()
			logger.Debugf("[%s] connection opened", correlation)
			if err := Serve(reg, conn, conn); err != nil {
				logger.Debugf("[%s] connection closed: %v", correlation, err)
			} else {
				logger.Debugf("[%s] connection closed", correlation)
			}
		}(conn, correlation)
	}
}
