package dispatch

import (
	"context"
	"fmt"

	"github.com/BaSui01/agentflow/llmcore/eventstream"
	"github.com/BaSui01/agentflow/llmcore/types"
)

// MessageRewriter mutates a conversation before it reaches a
// provider. It is the same "pure function over a request-shaped
// value, chainable" shape transform.Messages uses, so a Rewriter
// built from transform.Messages composes with the rewriters below.
type MessageRewriter interface {
	Rewrite(ctx context.Context, convCtx types.Context) (types.Context, error)
	Name() string
}

// RewriterChain runs a sequence of MessageRewriter in order, stopping
// at the first error.
type RewriterChain struct {
	rewriters []MessageRewriter
}

// NewRewriterChain builds a chain from rewriters, applied in order.
func NewRewriterChain(rewriters ...MessageRewriter) *RewriterChain {
	return &RewriterChain{rewriters: rewriters}
}

// Use appends a rewriter to the chain and returns it for chaining.
func (c *RewriterChain) Use(r MessageRewriter) *RewriterChain {
	c.rewriters = append(c.rewriters, r)
	return c
}

// Run applies every rewriter in order, threading the possibly-mutated
// convCtx through each one.
func (c *RewriterChain) Run(ctx context.Context, convCtx types.Context) (types.Context, error) {
	if c == nil {
		return convCtx, nil
	}
	var err error
	for _, r := range c.rewriters {
		convCtx, err = r.Rewrite(ctx, convCtx)
		if err != nil {
			return types.Context{}, fmt.Errorf("rewriter %q failed: %w", r.Name(), err)
		}
	}
	return convCtx, nil
}

// rewritingProvider decorates a Provider by running the chain against
// convCtx before delegating to inner.
type rewritingProvider struct {
	inner Provider
	chain *RewriterChain
}

// WithRewriters decorates inner so every Stream call is first passed
// through chain. A rewriter error is returned as the Stream error
// without ever reaching inner.
func WithRewriters(inner Provider, chain *RewriterChain) Provider {
	return &rewritingProvider{inner: inner, chain: chain}
}

func (p *rewritingProvider) Stream(ctx context.Context, apiKey string, model types.Model, convCtx types.Context) (*eventstream.Stream, error) {
	rewritten, err := p.chain.Run(ctx, convCtx)
	if err != nil {
		return nil, err
	}
	return p.inner.Stream(ctx, apiKey, model, rewritten)
}

// EmptyToolsCleaner clears a stale reasoning effort hint when Tools is
// empty. Some OpenAI-compatible endpoints reject a tool-oriented
// reasoning_effort value when no tools are offered, mirroring the
// upstream API's rejection of a lone tool_choice with no tools.
type EmptyToolsCleaner struct{}

func (EmptyToolsCleaner) Name() string { return "empty_tools_cleaner" }

func (EmptyToolsCleaner) Rewrite(_ context.Context, convCtx types.Context) (types.Context, error) {
	if len(convCtx.Tools) == 0 {
		convCtx.ReasoningEffort = ""
	}
	return convCtx, nil
}
