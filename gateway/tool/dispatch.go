// Package tool services the assistant's mid-run tool calls. The only
// capability on the allow-list is dealer search; anything else yields a
// structured error payload so the run is unblocked instead of deadlocking.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
	dealersx "github.com/openroadai/canam-assist/gateway/dealers"
)

const ToolDealerSearch = "dealer_search"

// Dispatcher executes one ToolCall and always produces its paired
// ToolResult. Failures inside a capability surface as errors; unknown names
// do not.
type Dispatcher func(ctx context.Context, call contractx.ToolCall) (contractx.ToolResult, error)

type dealerSearchArgs struct {
	Location    string `json:"location"`
	RadiusMiles int    `json:"radius_miles,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// NewDispatcher builds the allow-list dispatcher over a dealer finder.
func NewDispatcher(finder *dealersx.Finder) Dispatcher {
	return func(ctx context.Context, call contractx.ToolCall) (contractx.ToolResult, error) {
		switch call.Name {
		case ToolDealerSearch:
			return executeDealerSearch(ctx, finder, call)
		default:
			log.Warn().Str("tool", call.Name).Msg("assistant requested unknown tool")
			return errorResult(call.ID, fmt.Sprintf("tool %q is not available", call.Name)), nil
		}
	}
}

func executeDealerSearch(ctx context.Context, finder *dealersx.Finder, call contractx.ToolCall) (contractx.ToolResult, error) {
	var args dealerSearchArgs
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return errorResult(call.ID, fmt.Sprintf("invalid dealer_search arguments: %v", err)), nil
		}
	}
	if args.Location == "" {
		return errorResult(call.ID, "dealer_search requires a location"), nil
	}

	result, err := finder.Find(ctx, dealersx.Search{
		Location:    args.Location,
		RadiusMiles: args.RadiusMiles,
		Limit:       args.Limit,
	})
	if err != nil {
		return contractx.ToolResult{}, err
	}
	return jsonResult(call.ID, result)
}

func errorResult(callID, message string) contractx.ToolResult {
	payload, _ := json.Marshal(errorPayload{Error: message})
	return contractx.ToolResult{ToolCallID: callID, Output: string(payload)}
}

func jsonResult(callID string, v any) (contractx.ToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("marshal tool output: %w", err)
	}
	return contractx.ToolResult{ToolCallID: callID, Output: string(payload)}, nil
}
