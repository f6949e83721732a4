package registry

import "github.com/BaSui01/agentflow/llmcore/types"

const (
	minimaxGlobalBaseURL = "https://api.minimax.io/v1/chat/completions"
	minimaxCNBaseURL     = "https://api.minimax.chat/v1/chat/completions"
	minimaxContextWindow = 204_800
	minimaxMaxTokens     = 16_384
)

func buildMinimaxModel(id, name string, provider types.KnownProvider, baseURL string) types.Model {
	return types.Model{
		ID:            id,
		Name:          name,
		API:           types.APIMinimaxCompletions,
		Provider:      types.KnownProviderOf(provider),
		BaseURL:       baseURL,
		Reasoning:     true,
		Input:         []types.InputType{types.InputText},
		ContextWindow: minimaxContextWindow,
		MaxTokens:     minimaxMaxTokens,
	}
}

func builtinModels() []types.Model {
	return []types.Model{
		buildMinimaxModel("MiniMax-M2.5", "MiniMax M2.5", types.ProviderMinimax, minimaxGlobalBaseURL),
		buildMinimaxModel("MiniMax-M2.1", "MiniMax M2.1", types.ProviderMinimax, minimaxGlobalBaseURL),
		buildMinimaxModel("MiniMax-M2", "MiniMax M2", types.ProviderMinimax, minimaxGlobalBaseURL),
		buildMinimaxModel("MiniMax-M2.5", "MiniMax M2.5 (CN)", types.ProviderMinimaxCN, minimaxCNBaseURL),
		buildMinimaxModel("MiniMax-M2.1", "MiniMax M2.1 (CN)", types.ProviderMinimaxCN, minimaxCNBaseURL),
		buildMinimaxModel("MiniMax-M2", "MiniMax M2 (CN)", types.ProviderMinimaxCN, minimaxCNBaseURL),

		buildOpenAICompatModel("gpt-4o", "GPT-4o", types.ProviderOpenAI, "https://api.openai.com/v1/chat/completions", 128_000, 16_384),
		buildOpenAICompatModel("gpt-4o-mini", "GPT-4o mini", types.ProviderOpenAI, "https://api.openai.com/v1/chat/completions", 128_000, 16_384),
		buildOpenAICompatModel("grok-3", "Grok 3", types.ProviderXai, "https://api.x.ai/v1/chat/completions", 131_072, 8_192),
		buildOpenAICompatModel("llama-3.3-70b-versatile", "Llama 3.3 70B", types.ProviderGroq, "https://api.groq.com/openai/v1/chat/completions", 131_072, 32_768),
		buildOpenAICompatModel("llama-3.3-70b", "Llama 3.3 70B", types.ProviderCerebras, "https://api.cerebras.ai/v1/chat/completions", 131_072, 8_192),
		buildOpenAICompatModel("mistral-large-latest", "Mistral Large", types.ProviderMistral, "https://api.mistral.ai/v1/chat/completions", 131_072, 8_192),
		buildOpenAICompatModel("glm-4.6", "GLM-4.6", types.ProviderZai, "https://api.z.ai/api/paas/v4/chat/completions", 128_000, 8_192),
	}
}

func buildOpenAICompatModel(id, name string, provider types.KnownProvider, baseURL string, contextWindow, maxTokens uint32) types.Model {
	return types.Model{
		ID:            id,
		Name:          name,
		API:           types.APIOpenAICompletions,
		Provider:      types.KnownProviderOf(provider),
		BaseURL:       baseURL,
		Input:         []types.InputType{types.InputText},
		ContextWindow: contextWindow,
		MaxTokens:     maxTokens,
	}
}
