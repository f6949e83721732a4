package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentflow/llmcore/types"
)

func TestEmptyToolsCleanerClearsReasoningEffortWhenNoTools(t *testing.T) {
	cleaner := EmptyToolsCleaner{}

	out, err := cleaner.Rewrite(context.Background(), types.Context{ReasoningEffort: "high"})
	require.NoError(t, err)
	assert.Equal(t, "", out.ReasoningEffort)
}

func TestEmptyToolsCleanerKeepsReasoningEffortWhenToolsPresent(t *testing.T) {
	cleaner := EmptyToolsCleaner{}

	in := types.Context{ReasoningEffort: "high", Tools: []types.Tool{{Name: "search"}}}
	out, err := cleaner.Rewrite(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "high", out.ReasoningEffort)
}

func TestRewriterChainRunsInOrder(t *testing.T) {
	var order []string
	chain := NewRewriterChain(
		recordingRewriter{name: "first", order: &order},
		recordingRewriter{name: "second", order: &order},
	)

	_, err := chain.Run(context.Background(), types.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRewriterChainStopsOnError(t *testing.T) {
	chain := NewRewriterChain(
		failingRewriter{},
		recordingRewriter{name: "unreachable", order: &[]string{}},
	)

	_, err := chain.Run(context.Background(), types.Context{})
	require.Error(t, err)
}

func TestRewriterChainNilChainPassesThrough(t *testing.T) {
	var chain *RewriterChain
	out, err := chain.Run(context.Background(), types.Context{ReasoningEffort: "low"})
	require.NoError(t, err)
	assert.Equal(t, "low", out.ReasoningEffort)
}

func TestWithRewritersAppliesChainBeforeInner(t *testing.T) {
	fake := &fakeProvider{}
	chain := NewRewriterChain(EmptyToolsCleaner{})
	provider := WithRewriters(fake, chain)

	_, err := provider.Stream(context.Background(), "key", types.Model{}, types.Context{ReasoningEffort: "high"})
	require.NoError(t, err)
	assert.Equal(t, "", fake.lastCtx.ReasoningEffort)
}

type recordingRewriter struct {
	name  string
	order *[]string
}

func (r recordingRewriter) Name() string { return r.name }

func (r recordingRewriter) Rewrite(_ context.Context, convCtx types.Context) (types.Context, error) {
	*r.order = append(*r.order, r.name)
	return convCtx, nil
}

type failingRewriter struct{}

func (failingRewriter) Name() string { return "failing" }

func (failingRewriter) Rewrite(_ context.Context, _ types.Context) (types.Context, error) {
	return types.Context{}, errors.New("boom")
}
