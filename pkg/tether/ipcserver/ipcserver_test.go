package ipcserver

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/tetherfs/tether/pkg/tether/registry"
)

func TestServeHandlesMultipleRequests(t *testing.T) {
	reg := registry.New()
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal("unable to create test file:", err)
	}

	requests := bytes.Buffer{}
	encoder := json.NewEncoder(&requests)
	if err := encoder.Encode(map[string]string{"action": "register", "arg": path}); err != nil {
		t.Fatal("unable to encode request:", err)
	}
	if err := encoder.Encode(map[string]string{"action": "tick"}); err != nil {
		t.Fatal("unable to encode request:", err)
	}

	var responses bytes.Buffer
	if err := Serve(reg, &requests, &responses); err != nil {
		t.Fatal("serve failed:", err)
	}

	scanner := bufio.NewScanner(&responses)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 response lines, got %d: %v", len(lines), lines)
	}

	var registerResponse struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &registerResponse); err != nil {
		t.Fatal("unable to decode register response:", err)
	}
	if registerResponse.ID == "" {
		t.Error("expected a non-empty id in the register response")
	}

	if lines[1] != "{}" {
		t.Errorf("expected empty object for tick response, got %s", lines[1])
	}
}

func TestServeReportsMalformedRequest(t *testing.T) {
	reg := registry.New()

	requests := bytes.NewBufferString("not json\n")
	var responses bytes.Buffer
	if err := Serve(reg, requests, &responses); err != nil {
		t.Fatal("serve failed:", err)
	}

	var result struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(responses.Bytes()), &result); err != nil {
		t.Fatal("unable to decode error response:", err)
	}
	if result.Error == "" {
		t.Error("expected a non-empty error message for a malformed request")
	}
}

// TestExecuteRecoveringLogsAndExits verifies that a panic raised while
// dispatching a command is recovered just long enough to be logged, then
// the process exits rather than continuing to serve requests against a
// table a panicking goroutine may have left half-mutated. Since the
// recovery path calls os.Exit, it is exercised in a subprocess.
func TestExecuteRecoveringLogsAndExits(t *testing.T) {
	if os.Getenv("TETHER_TEST_PANIC_HELPER") == "1" {
		// A nil registry makes a tick dispatch panic on a nil pointer
		// dereference as soon as it locks the volume table, standing in for a
		// poisoned-table panic.
		requests := bytes.NewBufferString(`{"action":"tick"}` + "\n")
		var responses bytes.Buffer
		Serve(nil, requests, &responses)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecuteRecoveringLogsAndExits")
	cmd.Env = append(os.Environ(), "TETHER_TEST_PANIC_HELPER=1")
	output, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.Success() {
		t.Fatalf("expected the subprocess to exit with a non-zero status, got err=%v output=%s", err, output)
	}
	if !bytes.Contains(output, []byte("command dispatch panicked")) {
		t.Errorf("expected the panic to be logged before exit, got: %s", output)
	}
}
