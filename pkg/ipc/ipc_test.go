package ipc

import (
	"context"
	"encoding/gob"
	"path/filepath"
	"testing"

	"github.com/tetherfs/tether/pkg/logging"
	"github.com/tetherfs/tether/pkg/must"
)

// TestDialTimeoutNoEndpoint tests that DialTimeout fails if there is no
// endpoint at the specified path.
func TestDialTimeoutNoEndpoint(t *testing.T) {
	// Compute the IPC endpoint path.
	endpoint := filepath.Join(t.TempDir(), "test.sock")

	// Attempt to dial the listener and ensure that doing so fails.
	if c, err := DialTimeout(endpoint, RecommendedDialTimeout); err == nil {
		must.Close(c, logging.RootLogger)
		t.Error("IPC connection succeeded unexpectedly")
	}
}

// testIPCMessage is a structure used to test IPC messaging.
type testIPCMessage struct {
	// Name represents a person's name.
	Name string
	// Age represents a person's age.
	Age uint
}

// TestIPC tests that an IPC connection can be established between a listener
// and a dialer.
func TestIPC(t *testing.T) {
	// Create a test message.
	expected := testIPCMessage{"George", 67}

	// Compute the IPC endpoint path.
	endpoint := filepath.Join(t.TempDir(), "test.sock")

	// Create a listener and defer its closure.
	listener, err := NewListener(endpoint, logging.RootLogger)
	if err != nil {
		t.Fatal("unable to create listener:", err)
	}
	defer must.Close(listener, logging.RootLogger)

	// Perform dialing and message sending in a separate Goroutine.
	go func() {
		// Dial and defer connection closure.
		connection, err := DialContext(context.Background(), endpoint)
		if err != nil {
			return
		}
		defer must.Close(connection, logging.RootLogger)

		// Create an encoder and send a test message.
		encoder := gob.NewEncoder(connection)
		encoder.Encode(expected)
	}()

	// Accept a connection and defer its closure.
	connection, err := listener.Accept()
	if err != nil {
		t.Fatal("unable to accept connection:", err)
	}
	defer must.Close(connection, logging.RootLogger)

	// Create a decoder.
	decoder := gob.NewDecoder(connection)

	// Receive and validate test message.
	var received testIPCMessage
	if err := decoder.Decode(&received); err != nil {
		t.Fatal("unable to receive test message:", err)
	} else if received != expected {
		t.Error("received message does not match expected:", received, "!=", expected)
	}
}
