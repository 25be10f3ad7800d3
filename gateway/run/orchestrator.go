// Package run drives one remote assistant run per request: fresh session,
// single user message, poll until a terminal state, servicing tool calls on
// demand.
package run

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
	sanitizex "github.com/openroadai/canam-assist/gateway/sanitize"
	toolx "github.com/openroadai/canam-assist/gateway/tool"
)

const (
	defaultPollInterval = 600 * time.Millisecond
	defaultBudget       = 60 * time.Second

	// maxPolls backstops the wall-clock budget so a stalled clock can
	// never spin forever.
	maxPolls = 200
)

// Config binds an orchestrator to one assistant identity. Guardrail
// instructions are injected per deployment, not forked in code.
type Config struct {
	AgentID      string
	Instructions string
	PollInterval time.Duration
	Budget       time.Duration
}

// Orchestrator executes the session/run state machine over an injected
// provider. The provider handle is stateless and shared across requests;
// the orchestrator itself keeps no per-request state.
type Orchestrator struct {
	provider contractx.AgentProvider
	dispatch toolx.Dispatcher

	agentID      string
	instructions string
	pollInterval time.Duration
	budget       time.Duration
}

func New(provider contractx.AgentProvider, dispatch toolx.Dispatcher, cfg Config) (*Orchestrator, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: agent provider is required", contractx.ErrConfiguration)
	}
	if dispatch == nil {
		return nil, fmt.Errorf("%w: tool dispatcher is required", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(cfg.AgentID) == "" {
		return nil, fmt.Errorf("%w: agent identity is required", contractx.ErrConfiguration)
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	budget := cfg.Budget
	if budget <= 0 {
		budget = defaultBudget
	}

	return &Orchestrator{
		provider:     provider,
		dispatch:     dispatch,
		agentID:      cfg.AgentID,
		instructions: cfg.Instructions,
		pollInterval: pollInterval,
		budget:       budget,
	}, nil
}

// Ask posts the question into a fresh session, runs the assistant on it and
// returns the sanitized final answer. The message is posted exactly once and
// never retried; on timeout the remote run is left to finish orphaned, since
// the session is single-use.
func (o *Orchestrator) Ask(ctx context.Context, question string) (contractx.Answer, error) {
	sessionID, err := o.provider.CreateSession(ctx)
	if err != nil {
		return contractx.Answer{}, fmt.Errorf("create session: %w", err)
	}

	if err := o.provider.PostMessage(ctx, sessionID, "user", question); err != nil {
		return contractx.Answer{}, fmt.Errorf("post message: %w", err)
	}

	runID, err := o.provider.StartRun(ctx, sessionID, o.agentID, o.instructions)
	if err != nil {
		return contractx.Answer{}, fmt.Errorf("start run: %w", err)
	}

	log.Debug().Str("session_id", sessionID).Str("run_id", runID).Msg("assistant run started")

	deadline := time.Now().Add(o.budget)
	for poll := 0; poll < maxPolls; poll++ {
		if time.Now().After(deadline) {
			break
		}

		snapshot, err := o.provider.RunSnapshot(ctx, sessionID, runID)
		if err != nil {
			return contractx.Answer{}, fmt.Errorf("poll run: %w", err)
		}

		switch snapshot.Status {
		case contractx.RunCompleted:
			return o.collectAnswer(ctx, sessionID)

		case contractx.RunFailed, contractx.RunCancelled, contractx.RunExpired:
			return contractx.Answer{}, fmt.Errorf("%w: run ended with status=%s", contractx.ErrRunFailed, snapshot.Status)

		case contractx.RunRequiresAction:
			if err := o.serviceToolCalls(ctx, sessionID, runID, snapshot.PendingToolCalls); err != nil {
				return contractx.Answer{}, err
			}

		default:
			// CREATED or RUNNING; keep waiting.
		}

		if err := sleep(ctx, o.pollInterval); err != nil {
			return contractx.Answer{}, err
		}
	}

	return contractx.Answer{}, fmt.Errorf("%w: no terminal state within %s", contractx.ErrRunTimeout, o.budget)
}

// serviceToolCalls produces exactly one result per pending call, preserving
// tool_call_id pairing, and submits the whole batch before polling resumes.
func (o *Orchestrator) serviceToolCalls(ctx context.Context, sessionID, runID string, calls []contractx.ToolCall) error {
	results := make([]contractx.ToolResult, 0, len(calls))
	for _, call := range calls {
		result, err := o.dispatch(ctx, call)
		if err != nil {
			return fmt.Errorf("tool %s: %w", call.Name, err)
		}
		results = append(results, result)
	}

	if err := o.provider.SubmitToolResults(ctx, sessionID, runID, results); err != nil {
		return fmt.Errorf("submit tool results: %w", err)
	}

	log.Debug().Str("run_id", runID).Int("tool_calls", len(calls)).Msg("tool results submitted")
	return nil
}

func (o *Orchestrator) collectAnswer(ctx context.Context, sessionID string) (contractx.Answer, error) {
	parts, err := o.provider.LatestAssistantMessage(ctx, sessionID)
	if err != nil {
		return contractx.Answer{}, fmt.Errorf("fetch answer: %w", err)
	}

	texts := make([]string, 0, len(parts))
	var annotations []string
	for _, part := range parts {
		texts = append(texts, part.Text)
		annotations = append(annotations, part.Annotations...)
	}

	text := sanitizex.Answer(strings.Join(texts, "\n\n"), annotations)
	if text == "" {
		text = "(No reply)"
	}
	return contractx.Answer{Text: text, Source: contractx.SourceAgent}, nil
}

// sleep is the cooperative backoff between status checks.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
