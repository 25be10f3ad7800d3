package tool

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
	dealersx "github.com/openroadai/canam-assist/gateway/dealers"
)

func TestDispatchDealerSearch(t *testing.T) {
	t.Parallel()

	// Unconfigured finder still services the call with a note payload.
	dispatch := NewDispatcher(dealersx.New(nil))

	result, err := dispatch(context.Background(), contractx.ToolCall{
		ID:        "call_1",
		Name:      ToolDealerSearch,
		Arguments: `{"location":"95814","radius_miles":25}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ToolCallID != "call_1" {
		t.Errorf("tool call id = %q", result.ToolCallID)
	}

	var payload dealersx.Result
	if err := json.Unmarshal([]byte(result.Output), &payload); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if payload.Note == "" {
		t.Error("expected note for unconfigured dealer search")
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	t.Parallel()

	dispatch := NewDispatcher(dealersx.New(nil))

	result, err := dispatch(context.Background(), contractx.ToolCall{
		ID:   "call_9",
		Name: "launch_rocket",
	})
	if err != nil {
		t.Fatalf("unknown tool must not fail the run: %v", err)
	}
	if result.ToolCallID != "call_9" {
		t.Errorf("tool call id = %q", result.ToolCallID)
	}

	var payload errorPayload
	if err := json.Unmarshal([]byte(result.Output), &payload); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !strings.Contains(payload.Error, "launch_rocket") {
		t.Errorf("error payload = %q, want tool name", payload.Error)
	}
}

func TestDispatchBadArguments(t *testing.T) {
	t.Parallel()

	dispatch := NewDispatcher(dealersx.New(nil))

	for name, args := range map[string]string{
		"malformed":        `{"location":`,
		"missing location": `{"radius_miles":10}`,
		"empty":            "",
	} {
		result, err := dispatch(context.Background(), contractx.ToolCall{
			ID:        "call_2",
			Name:      ToolDealerSearch,
			Arguments: args,
		})
		if err != nil {
			t.Fatalf("%s: argument problems must stay in-band: %v", name, err)
		}
		var payload errorPayload
		if err := json.Unmarshal([]byte(result.Output), &payload); err != nil {
			t.Fatalf("%s: output is not JSON: %v", name, err)
		}
		if payload.Error == "" {
			t.Errorf("%s: expected error payload", name)
		}
	}
}
