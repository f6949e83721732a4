package openaicompat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BaSui01/agentflow/llmcore/types"
)

func TestDetectCompatOpenAI(t *testing.T) {
	c := detectCompat("https://api.openai.com/v1/chat/completions", types.KnownProviderOf(types.ProviderOpenAI))
	assert.True(t, c.SupportsStore)
	assert.Equal(t, types.MaxTokensFieldMaxCompletionTokens, c.MaxTokensField)
}

func TestDetectCompatMistral(t *testing.T) {
	c := detectCompat("https://api.mistral.ai/v1/chat/completions", types.Provider{})
	assert.True(t, c.RequiresMistralToolIDs)
	assert.False(t, c.SupportsStore)
	assert.Equal(t, types.MaxTokensFieldMaxTokens, c.MaxTokensField)
}

func TestDetectCompatByProviderIdentity(t *testing.T) {
	c := detectCompat("https://my-custom-gateway.internal/v1", types.KnownProviderOf(types.ProviderCerebras))
	assert.False(t, c.SupportsStore)
	assert.False(t, c.SupportsDeveloperRole)
}

func TestResolveCompatOverrideWins(t *testing.T) {
	detected := detectCompat("https://api.openai.com/v1/chat/completions", types.KnownProviderOf(types.ProviderOpenAI))
	assert.True(t, detected.SupportsStore)

	no := false
	resolved := resolveCompat(detected, &types.CompatOverrides{SupportsStore: &no})
	assert.False(t, resolved.SupportsStore)
}
