package main

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/tetherfs/tether/pkg/daemon"
	"github.com/tetherfs/tether/pkg/tether/command"
)

// dispatch dials the running daemon's local socket, sends a single JSON
// request, and returns the decoded response line. This is the CLI's only
// path to the core: unlike the daemon subcommand, these client subcommands
// never touch the registry directly.
func dispatch(req command.Request) (json.RawMessage, error) {
	conn, err := daemon.DialTimeout(daemon.RecommendedDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to daemon (is it running?): %w", err)
	}
	defer conn.Close()

	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("unable to encode request: %w", err)
	}

	if _, err := conn.Write(append(encoded, '\n')); err != nil {
		return nil, fmt.Errorf("unable to send request: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("unable to read response: %w", err)
		}
		return nil, fmt.Errorf("daemon closed the connection without responding")
	}

	return json.RawMessage(scanner.Bytes()), nil
}
