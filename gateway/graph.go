package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
	normalizex "github.com/openroadai/canam-assist/gateway/normalize"
	routerx "github.com/openroadai/canam-assist/gateway/router"
)

type GraphInput struct {
	Question string
}

type GraphOutput struct {
	Answer contractx.Answer
}

type graphState struct {
	Raw        string
	Normalized string
	Route      routerx.Route
}

func (g *Gateway) compileQuestionGraph(
	ctx context.Context,
) (compose.Runnable[GraphInput, GraphOutput], error) {
	graph := compose.NewGraph[GraphInput, GraphOutput]()

	if err := graph.AddLambdaNode("validate_question",
		compose.InvokableLambda(func(ctx context.Context, in GraphInput) (*graphState, error) {
			question := strings.TrimSpace(in.Question)
			if question == "" {
				return nil, contractx.ErrEmptyQuestion
			}
			return &graphState{Raw: question}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_question: %w", err)
	}

	if err := graph.AddLambdaNode("normalize",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			in.Normalized = normalizex.Text(in.Raw)
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node normalize: %w", err)
	}

	if err := graph.AddLambdaNode("route",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			in.Route = routerx.Classify(in.Normalized)
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node route: %w", err)
	}

	if err := graph.AddLambdaNode("compose_answer",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (GraphOutput, error) {
			answer, err := g.composer.Render(ctx, in.Route)
			if err != nil {
				return GraphOutput{}, err
			}
			return GraphOutput{Answer: answer}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node compose_answer: %w", err)
	}

	if err := graph.AddLambdaNode("ask_assistant",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (GraphOutput, error) {
			answer, err := g.asker.Ask(ctx, in.Normalized)
			if err != nil {
				return GraphOutput{}, err
			}
			return GraphOutput{Answer: answer}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node ask_assistant: %w", err)
	}

	// A keyword-classified question answers from the catalog. A fallback
	// classification means free text; that goes to the assistant when one
	// is configured.
	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *graphState) (string, error) {
			if in.Route.KeywordMatch || g.asker == nil {
				return "compose_answer", nil
			}
			return "ask_assistant", nil
		},
		map[string]bool{
			"compose_answer": true,
			"ask_assistant":  true,
		},
	)

	if err := graph.AddEdge(compose.START, "validate_question"); err != nil {
		return nil, fmt.Errorf("add edge start->validate: %w", err)
	}
	if err := graph.AddEdge("validate_question", "normalize"); err != nil {
		return nil, fmt.Errorf("add edge validate->normalize: %w", err)
	}
	if err := graph.AddEdge("normalize", "route"); err != nil {
		return nil, fmt.Errorf("add edge normalize->route: %w", err)
	}
	if err := graph.AddBranch("route", branch); err != nil {
		return nil, fmt.Errorf("add route branch: %w", err)
	}
	if err := graph.AddEdge("compose_answer", compose.END); err != nil {
		return nil, fmt.Errorf("add edge compose->end: %w", err)
	}
	if err := graph.AddEdge("ask_assistant", compose.END); err != nil {
		return nil, fmt.Errorf("add edge ask->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("gateway.handle_question"))
	if err != nil {
		return nil, fmt.Errorf("compile question graph: %w", err)
	}
	return runner, nil
}
