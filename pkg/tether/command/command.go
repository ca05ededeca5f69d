// Package command implements the transport-agnostic JSON command surface:
// register/unregister/update/tick plus the auxiliary get_tag and
// debug_history queries. Both the stdio and local-socket transports
// (pkg/tether/ipcserver) dispatch through Execute.
package command

import (
	"encoding/json"
	"fmt"

	"github.com/tetherfs/tether/pkg/tether/registry"
	"github.com/tetherfs/tether/pkg/tether/tagging"
	"github.com/tetherfs/tether/pkg/tether/tracker"
)

// Request is a single dispatched command: an action name and a single
// string argument (a path or an identifier, depending on the action).
type Request struct {
	Action string `json:"action"`
	Arg    string `json:"arg"`
}

// Execute dispatches a single request against reg and returns the raw JSON
// response, matching the shapes in spec.md §6. Unknown actions and
// dispatch-level failures are reported as a JSON object carrying an
// "error" field rather than a transport-level error, so the command
// surface never needs the caller to distinguish "core says no" from
// "transport broke".
func Execute(reg *registry.Registry, req Request) json.RawMessage {
	var (
		payload interface{}
		err     error
	)

	switch req.Action {
	case "register":
		payload, err = register(reg, req.Arg)
	case "unregister":
		payload = unregister(reg, req.Arg)
	case "update":
		payload = update(reg, req.Arg)
	case "tick":
		reg.Tick()
		payload = struct{}{}
	case "get_tag":
		payload = getTag(req.Arg)
	case "debug_history":
		payload = debugHistory(reg, req.Arg)
	default:
		err = fmt.Errorf("unknown action %q", req.Action)
	}

	if err != nil {
		payload = errorResponse{Error: err.Error()}
	}

	encoded, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		// Marshaling a response built entirely from this package's own
		// fixed shapes should never fail; if it somehow does, degrade to
		// a minimal valid JSON object rather than propagating a broken
		// transport frame.
		return json.RawMessage(`{"error":"internal: unable to encode response"}`)
	}

	return encoded
}

type errorResponse struct {
	Error string `json:"error"`
}

func register(reg *registry.Registry, path string) (interface{}, error) {
	id, err := reg.RegisterFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to register %s: %w", path, err)
	}
	return struct {
		ID string `json:"id"`
	}{ID: id}, nil
}

func unregister(reg *registry.Registry, arg string) interface{} {
	reg.UnregisterFile(arg)
	return struct {
		Unregistered string `json:"unregistered"`
	}{Unregistered: arg}
}

func update(reg *registry.Registry, id string) interface{} {
	state, ok := reg.GetTrackerState(id)
	if !ok {
		return struct{}{}
	}
	return stateJSON(state)
}

// stateJSON renders a tracker state using the tagged-sum shape from
// spec.md §6: exactly one of "Certain", "Renaming", or "Moving" is present.
func stateJSON(state tracker.State) interface{} {
	switch state.Kind {
	case tracker.Certain:
		body := struct {
			ID   string `json:"id"`
			Path string `json:"path"`
		}{ID: state.ID, Path: state.Path}
		return struct {
			Certain interface{} `json:"Certain"`
		}{Certain: body}
	case tracker.Renaming:
		return renamingOrMoving("Renaming", state)
	case tracker.Moving:
		return renamingOrMoving("Moving", state)
	default:
		return struct{}{}
	}
}

func renamingOrMoving(tag string, state tracker.State) interface{} {
	body := struct {
		ID          string `json:"id"`
		PartialPath string `json:"partial_path"`
	}{ID: state.ID, PartialPath: state.Partial}

	if tag == "Renaming" {
		return struct {
			Renaming interface{} `json:"Renaming"`
		}{Renaming: body}
	}
	return struct {
		Moving interface{} `json:"Moving"`
	}{Moving: body}
}

func getTag(path string) interface{} {
	id, ok, err := tagging.GetTag(path)
	if err != nil || !ok {
		return struct {
			Valid bool `json:"valid"`
		}{Valid: false}
	}
	return struct {
		Valid bool   `json:"valid"`
		Tag   string `json:"tag"`
	}{Valid: true, Tag: id}
}

func debugHistory(reg *registry.Registry, id string) interface{} {
	history, ok := reg.DebugHistory(id)
	if !ok {
		return struct{}{}
	}
	return struct {
		History []string `json:"history"`
	}{History: history}
}
