// ABOUTME: Tests for the comparison RPC surface: router dispatch and full flows
// ABOUTME: Drives the JSONL server loop end to end over in-memory pipes

package rpc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func newTestRouter() *Router {
	return NewComparisonRouter(NewRegistry())
}

func call(t *testing.T, r *Router, method string, params any) Response {
	t.Helper()
	resp := r.Handle(Request{ID: "t1", Method: method, Params: params})
	if resp.ID != "t1" {
		t.Errorf("response id = %q, want t1", resp.ID)
	}
	return resp
}

// decodeResult re-marshals a generic result into a typed payload.
func decodeResult[T any](t *testing.T, resp Response) T {
	t.Helper()
	var out T
	if resp.Error != nil {
		t.Fatalf("unexpected rpc error: %+v", resp.Error)
	}
	data, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	return out
}

func TestRouter_MethodNotFound(t *testing.T) {
	t.Parallel()

	resp := call(t, newTestRouter(), "bogus", nil)
	if resp.Error == nil || resp.Error.Code != ErrCodeMethodNotFound {
		t.Errorf("error = %+v, want method-not-found", resp.Error)
	}
}

func TestCreate_RequiresLabels(t *testing.T) {
	t.Parallel()

	resp := call(t, newTestRouter(), MethodCreate, CreateParams{ObjectA: "a"})
	if resp.Error == nil || resp.Error.Code != ErrCodeInvalidParams {
		t.Errorf("error = %+v, want invalid params", resp.Error)
	}
}

func TestFullFlow_CoarseConfirm(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	state := decodeResult[StateResult](t, call(t, r, MethodCreate, CreateParams{ObjectA: "a", ObjectB: "b"}))
	if state.Level != "initial" || state.Scale != "integer" {
		t.Fatalf("initial state = %+v", state)
	}

	state = decodeResult[StateResult](t, call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "chooseA"}))
	if state.Level != "coarse" || state.Reliability != 1 {
		t.Fatalf("after chooseA = %+v", state)
	}

	state = decodeResult[StateResult](t, call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "selectGrade", Grade: 5}))
	if state.Level != "medium" || state.Branch != "strong" {
		t.Fatalf("after selectGrade(5) = %+v", state)
	}

	// Confirming an active medium panel terminates and retires the handle.
	result := decodeResult[ResultPayload](t, call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "selectGrade", Grade: 5}))
	if result.Ratio != 5 || result.Reliability != 3 || result.Scale != "integer" {
		t.Errorf("result = %+v, want ratio 5 reliability 3 integer", result)
	}

	resp := call(t, r, MethodState, HandleParams{ID: state.ID})
	if resp.Error == nil || resp.Error.Code != ErrCodeNoComparison {
		t.Errorf("state after retire = %+v, want no-comparison error", resp.Error)
	}
}

func TestAction_PowerScaleViaRPC(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	state := decodeResult[StateResult](t, call(t, r, MethodCreate, CreateParams{ObjectA: "a", ObjectB: "b", Scale: "power"}))
	if state.Scale != "power" {
		t.Fatalf("create with scale = %+v", state)
	}

	decodeResult[StateResult](t, call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "chooseB"}))
	decodeResult[StateResult](t, call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "selectGrade", Grade: 5}))
	result := decodeResult[ResultPayload](t, call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "selectGrade", Grade: 5}))

	// Object B preferred: the ratio is the reciprocal of 9^(4/8) = 3.
	if math.Abs(result.Ratio-1.0/3) > 1e-9 {
		t.Errorf("ratio = %g, want 1/3", result.Ratio)
	}
}

func TestAction_ErrorsCarryCodes(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	state := decodeResult[StateResult](t, call(t, r, MethodCreate, CreateParams{ObjectA: "a", ObjectB: "b"}))

	tests := []struct {
		name   string
		params ActionParams
		code   int
	}{
		{"grade before direction", ActionParams{ID: state.ID, Action: "selectGrade", Grade: 5}, ErrCodeInvalidAction},
		{"unknown action", ActionParams{ID: state.ID, Action: "explode"}, ErrCodeInvalidParams},
		{"unknown handle", ActionParams{ID: "cmp-999", Action: "chooseA"}, ErrCodeNoComparison},
	}
	for _, tt := range tests {
		resp := call(t, r, MethodAction, tt.params)
		if resp.Error == nil || resp.Error.Code != tt.code {
			t.Errorf("%s: error = %+v, want code %d", tt.name, resp.Error, tt.code)
		}
	}

	decodeResult[StateResult](t, call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "chooseA"}))
	resp := call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "selectGrade", Grade: 4})
	if resp.Error == nil || resp.Error.Code != ErrCodeInvalidGrade {
		t.Errorf("grade outside pattern: error = %+v, want code %d", resp.Error, ErrCodeInvalidGrade)
	}
}

func TestResult_BeforeTerminalIsNotReady(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	state := decodeResult[StateResult](t, call(t, r, MethodCreate, CreateParams{ObjectA: "a", ObjectB: "b"}))
	resp := call(t, r, MethodResult, HandleParams{ID: state.ID})
	if resp.Error == nil || resp.Error.Code != ErrCodeNotReady {
		t.Errorf("error = %+v, want not-ready", resp.Error)
	}
}

func TestNoPreference_NeutralResult(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	state := decodeResult[StateResult](t, call(t, r, MethodCreate, CreateParams{ObjectA: "a", ObjectB: "b"}))
	result := decodeResult[ResultPayload](t, call(t, r, MethodAction, ActionParams{ID: state.ID, Action: "noPreference"}))
	if result.Ratio != 1 || result.Reliability != 0 || result.Scale != "none" {
		t.Errorf("result = %+v, want (1, 0, none)", result)
	}
}

func TestListScales(t *testing.T) {
	t.Parallel()

	list := decodeResult[ScaleListResult](t, call(t, newTestRouter(), MethodListScales, nil))
	if len(list.Scales) != 5 {
		t.Fatalf("scales = %d, want 5", len(list.Scales))
	}
	if list.Scales[0].Name != "integer" {
		t.Errorf("first scale = %q, want integer", list.Scales[0].Name)
	}
}

func TestServer_JSONLLoop(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(
		`{"id":"1","method":"create","params":{"object_a":"x","object_b":"y"}}` + "\n" +
			`not json` + "\n" +
			`{"id":"2","method":"action","params":{"id":"cmp-1","action":"noPreference"}}` + "\n")
	var out bytes.Buffer

	router := newTestRouter()
	srv := NewServerIO(in, &out, router.Handle)
	if err := srv.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	scanner := bufio.NewScanner(&out)
	var lines []Response
	for scanner.Scan() {
		var resp Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("response line not JSON: %v", err)
		}
		lines = append(lines, resp)
	}
	if len(lines) != 3 {
		t.Fatalf("responses = %d, want 3", len(lines))
	}
	if lines[0].ID != "1" || lines[0].Error != nil {
		t.Errorf("create response = %+v", lines[0])
	}
	if lines[1].Error == nil || lines[1].Error.Code != ErrCodeParse {
		t.Errorf("parse error response = %+v", lines[1])
	}
	if lines[2].ID != "2" || lines[2].Error != nil {
		t.Errorf("action response = %+v", lines[2])
	}
}
