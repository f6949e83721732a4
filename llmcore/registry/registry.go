package registry

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/BaSui01/agentflow/llmcore/dispatch"
	"github.com/BaSui01/agentflow/llmcore/errs"
	"github.com/BaSui01/agentflow/llmcore/provider/minimax"
	"github.com/BaSui01/agentflow/llmcore/provider/openaicompat"
	"github.com/BaSui01/agentflow/llmcore/types"
)

// Registry resolves a model id to its descriptor and a Provider that
// can serve it, and holds API-key lookup.
type Registry struct {
	mu     sync.RWMutex
	models map[string]types.Model

	openai  dispatch.Provider
	minimax dispatch.Provider
}

// New builds a Registry preloaded with the built-in model catalog.
// logger is passed through to the underlying provider engines.
func New(logger *zap.Logger) *Registry {
	r := &Registry{
		models:  make(map[string]types.Model),
		openai:  openaicompat.New(logger),
		minimax: minimax.New(logger),
	}
	for _, m := range builtinModels() {
		r.Register(m)
	}
	return r
}

// Register adds or replaces a model descriptor, keyed on provider:id
// so the same model id can exist under multiple providers (e.g.
// MiniMax global vs. CN).
func (r *Registry) Register(m types.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[modelKey(m.Provider, m.ID)] = m
}

func modelKey(provider types.Provider, id string) string {
	return provider.String() + ":" + id
}

// Model looks up a previously registered descriptor.
func (r *Registry) Model(provider types.Provider, id string) (types.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[modelKey(provider, id)]
	if !ok {
		return types.Model{}, errs.ModelNotFound(id)
	}
	return m, nil
}

// Provider resolves the dispatch.Provider that serves model.API.
func (r *Registry) Provider(model types.Model) (dispatch.Provider, error) {
	switch model.API {
	case types.APIOpenAICompletions:
		return r.openai, nil
	case types.APIMinimaxCompletions:
		return r.minimax, nil
	default:
		return nil, errs.UnknownAPI(string(model.API))
	}
}

// APIKey reads the credential for provider from the environment,
// following the `{PROVIDER}_API_KEY` convention with a couple of
// provider-specific exceptions (MiniMax's CN region has its own key).
func APIKey(provider types.Provider) (string, error) {
	var envVar string
	switch {
	case provider.IsKnown(types.ProviderMinimax):
		envVar = "MINIMAX_API_KEY"
	case provider.IsKnown(types.ProviderMinimaxCN):
		envVar = "MINIMAX_CN_API_KEY"
	default:
		envVar = strings.ToUpper(strings.ReplaceAll(provider.String(), "-", "_")) + "_API_KEY"
	}

	key := os.Getenv(envVar)
	if key == "" {
		return "", errs.NoAPIKey(provider.String())
	}
	return key, nil
}
