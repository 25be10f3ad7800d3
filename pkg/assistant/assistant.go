// Package assistant adapts the OpenAI Assistants API to the gateway's
// AgentProvider contract: threads are sessions, runs are runs.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

type Config struct {
	APIKey       string        `envconfig:"API_KEY" split_words:"true"`
	AssistantID  string        `envconfig:"ASSISTANT_ID" split_words:"true"`
	Instructions string        `envconfig:"INSTRUCTIONS" split_words:"true"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" split_words:"true" default:"600ms"`
	RunBudget    time.Duration `envconfig:"RUN_BUDGET" split_words:"true" default:"60s"`
}

// Validate fails fast on a missing credential or identity, before any
// network call could be attempted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: assistant api key is not set", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.AssistantID) == "" {
		return fmt.Errorf("%w: assistant id is not set", contractx.ErrConfiguration)
	}
	return nil
}

// Configured reports whether the agent path can be enabled at all.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != "" || strings.TrimSpace(c.AssistantID) != ""
}

// Client implements contract.AgentProvider over the OpenAI SDK. The SDK
// handle is stateless and safe for concurrent reuse across requests.
type Client struct {
	sdk openaisdk.Client
}

var _ contractx.AgentProvider = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sdk := openaisdk.NewClient(option.WithAPIKey(strings.TrimSpace(cfg.APIKey)))
	return &Client{sdk: sdk}, nil
}

func (c *Client) CreateSession(ctx context.Context) (string, error) {
	thread, err := c.sdk.Beta.Threads.New(ctx, openaisdk.BetaThreadNewParams{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return thread.ID, nil
}

func (c *Client) PostMessage(ctx context.Context, sessionID, role, text string) error {
	_, err := c.sdk.Beta.Threads.Messages.New(ctx, sessionID, openaisdk.BetaThreadMessageNewParams{
		Role: openaisdk.BetaThreadMessageNewParamsRole(role),
		Content: openaisdk.BetaThreadMessageNewParamsContentUnion{
			OfString: openaisdk.String(text),
		},
	})
	if err != nil {
		return fmt.Errorf("post thread message: %w", err)
	}
	return nil
}

func (c *Client) StartRun(ctx context.Context, sessionID, agentID, instructions string) (string, error) {
	params := openaisdk.BetaThreadRunNewParams{
		AssistantID: agentID,
	}
	if instructions != "" {
		params.Instructions = openaisdk.String(instructions)
	}
	run, err := c.sdk.Beta.Threads.Runs.New(ctx, sessionID, params)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return run.ID, nil
}

func (c *Client) RunSnapshot(ctx context.Context, sessionID, runID string) (contractx.RunSnapshot, error) {
	run, err := c.sdk.Beta.Threads.Runs.Get(ctx, sessionID, runID)
	if err != nil {
		return contractx.RunSnapshot{}, fmt.Errorf("retrieve run: %w", err)
	}

	snapshot := contractx.RunSnapshot{Status: mapStatus(run.Status)}
	if snapshot.Status == contractx.RunRequiresAction {
		for _, call := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
			snapshot.PendingToolCalls = append(snapshot.PendingToolCalls, contractx.ToolCall{
				ID:        call.ID,
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			})
		}
	}
	return snapshot, nil
}

func (c *Client) SubmitToolResults(ctx context.Context, sessionID, runID string, results []contractx.ToolResult) error {
	outputs := make([]openaisdk.BetaThreadRunSubmitToolOutputsParamsToolOutput, 0, len(results))
	for _, result := range results {
		outputs = append(outputs, openaisdk.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: openaisdk.String(result.ToolCallID),
			Output:     openaisdk.String(result.Output),
		})
	}

	_, err := c.sdk.Beta.Threads.Runs.SubmitToolOutputs(ctx, sessionID, runID, openaisdk.BetaThreadRunSubmitToolOutputsParams{
		ToolOutputs: outputs,
	})
	if err != nil {
		return fmt.Errorf("submit tool outputs: %w", err)
	}
	return nil
}

func (c *Client) LatestAssistantMessage(ctx context.Context, sessionID string) ([]contractx.MessagePart, error) {
	page, err := c.sdk.Beta.Threads.Messages.List(ctx, sessionID, openaisdk.BetaThreadMessageListParams{
		Order: openaisdk.BetaThreadMessageListParamsOrderDesc,
		Limit: openaisdk.Int(1),
	})
	if err != nil {
		return nil, fmt.Errorf("list thread messages: %w", err)
	}
	if len(page.Data) == 0 {
		return nil, nil
	}

	var parts []contractx.MessagePart
	for _, content := range page.Data[0].Content {
		if content.Type != "text" {
			continue
		}
		part := contractx.MessagePart{Text: content.Text.Value}
		for _, ann := range content.Text.Annotations {
			if ann.Text != "" {
				part.Annotations = append(part.Annotations, ann.Text)
			}
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func mapStatus(status openaisdk.RunStatus) contractx.RunStatus {
	switch status {
	case openaisdk.RunStatusQueued:
		return contractx.RunCreated
	case openaisdk.RunStatusInProgress, openaisdk.RunStatusCancelling:
		return contractx.RunRunning
	case openaisdk.RunStatusRequiresAction:
		return contractx.RunRequiresAction
	case openaisdk.RunStatusCompleted:
		return contractx.RunCompleted
	case openaisdk.RunStatusCancelled:
		return contractx.RunCancelled
	case openaisdk.RunStatusExpired:
		return contractx.RunExpired
	default:
		// failed, incomplete, or anything the API adds later.
		return contractx.RunFailed
	}
}
