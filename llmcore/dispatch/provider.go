package dispatch

import (
	"context"

	"github.com/BaSui01/agentflow/llmcore/eventstream"
	"github.com/BaSui01/agentflow/llmcore/types"
)

// Provider streams a chat completion for the given model against the
// given conversation, returning immediately with a handle whose
// events and terminal result arrive asynchronously.
type Provider interface {
	Stream(ctx context.Context, apiKey string, model types.Model, convCtx types.Context) (*eventstream.Stream, error)
}
