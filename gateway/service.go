// Package gateway wires the question pipeline: normalize, route, then
// either compose a deterministic answer from the catalog or hand the
// question to the remote assistant.
package gateway

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"

	composerx "github.com/openroadai/canam-assist/gateway/compose"
	contractx "github.com/openroadai/canam-assist/gateway/contract"
	runx "github.com/openroadai/canam-assist/gateway/run"
)

// Asker answers a free-form question through the remote assistant.
// *run.Orchestrator implements it; tests swap in fakes.
type Asker interface {
	Ask(ctx context.Context, question string) (contractx.Answer, error)
}

var _ Asker = (*runx.Orchestrator)(nil)

// Gateway is the single entry point behind the /chat endpoint. A nil asker
// means no assistant is configured; free-form questions then fall back to
// the deterministic recommend path.
type Gateway struct {
	composer *composerx.Composer
	asker    Asker

	graphRunner compose.Runnable[GraphInput, GraphOutput]
}

func New(composer *composerx.Composer, asker Asker) (*Gateway, error) {
	if composer == nil {
		return nil, errors.New("answer composer is required")
	}

	g := &Gateway{
		composer: composer,
		asker:    asker,
	}

	graphRunner, err := g.compileQuestionGraph(context.Background())
	if err != nil {
		return nil, err
	}
	g.graphRunner = graphRunner

	return g, nil
}

// Handle answers one question. Each call is stateless and independent;
// concurrent calls share nothing but read-only collaborators.
func (g *Gateway) Handle(ctx context.Context, question string) (contractx.Answer, error) {
	out, err := g.graphRunner.Invoke(ctx, GraphInput{Question: question})
	if err != nil {
		return contractx.Answer{}, err
	}
	return out.Answer, nil
}
