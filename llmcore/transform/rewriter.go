package transform

import (
	"context"

	"github.com/BaSui01/agentflow/llmcore/types"
)

// Rewriter adapts Messages into the "pure function over a
// request-shaped value, chainable" MessageRewriter shape the
// dispatcher's rewriter chain expects, so history rewriting for a
// different target model composes with the rest of the chain.
type Rewriter struct {
	Target    types.TargetModel
	Normalize NormalizeToolCallID
}

func (r Rewriter) Name() string { return "history_transform" }

func (r Rewriter) Rewrite(_ context.Context, convCtx types.Context) (types.Context, error) {
	convCtx.Messages = Messages(convCtx.Messages, r.Target, r.Normalize)
	return convCtx, nil
}
