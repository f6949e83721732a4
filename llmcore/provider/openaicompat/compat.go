package openaicompat

import (
	"strings"

	"github.com/BaSui01/agentflow/llmcore/types"
)

// Compat is the resolved set of quirks a specific base URL/provider
// combination needs when talking the OpenAI chat-completions dialect.
// Every OpenAICompletions-family provider goes through detectCompat
// then resolveCompat before a request is built.
type Compat struct {
	SupportsStore                    bool
	SupportsDeveloperRole            bool
	SupportsReasoningEffort          bool
	SupportsUsageInStreaming         bool
	MaxTokensField                   types.MaxTokensField
	RequiresToolResultName           bool
	RequiresAssistantAfterToolResult bool
	RequiresThinkingAsText           bool
	RequiresMistralToolIDs           bool
	ThinkingFormat                   types.ThinkingFormat
}

// defaultCompat is the baseline OpenAI dialect: full feature set, no
// quirks.
func defaultCompat() Compat {
	return Compat{
		SupportsStore:            true,
		SupportsDeveloperRole:    true,
		SupportsReasoningEffort:  true,
		SupportsUsageInStreaming: true,
		MaxTokensField:           types.MaxTokensFieldMaxCompletionTokens,
		ThinkingFormat:           types.ThinkingFormatOpenAI,
	}
}

// detectCompat infers provider quirks from the base URL and known
// provider identity. Each vendor case matches either the provider
// identity or a substring of baseURL (for custom/self-hosted
// deployments that reuse a known provider's gateway domain); cases are
// tried in order and the first match wins.
func detectCompat(baseURL string, provider types.Provider) Compat {
	c := defaultCompat()
	url := strings.ToLower(baseURL)

	switch {
	case provider.IsKnown(types.ProviderCerebras), strings.Contains(url, "cerebras.ai"):
		c.SupportsStore = false
		c.SupportsDeveloperRole = false
		c.MaxTokensField = types.MaxTokensFieldMaxTokens

	case provider.IsKnown(types.ProviderXai), strings.Contains(url, "x.ai"):
		c.SupportsStore = false
		c.MaxTokensField = types.MaxTokensFieldMaxTokens

	case provider.IsKnown(types.ProviderMistral), strings.Contains(url, "mistral.ai"):
		c.SupportsStore = false
		c.SupportsDeveloperRole = false
		c.MaxTokensField = types.MaxTokensFieldMaxTokens
		c.RequiresMistralToolIDs = true

	case provider.IsKnown(types.ProviderZai), strings.Contains(url, "z.ai"), strings.Contains(url, "bigmodel.cn"):
		c.SupportsStore = false
		c.SupportsReasoningEffort = false
		c.MaxTokensField = types.MaxTokensFieldMaxTokens
		c.ThinkingFormat = types.ThinkingFormatZai

	case strings.Contains(url, "chutes.ai"):
		c.SupportsStore = false
		c.SupportsUsageInStreaming = false
		c.MaxTokensField = types.MaxTokensFieldMaxTokens

	case provider.IsKnown(types.ProviderGroq), strings.Contains(url, "groq.com"):
		c.SupportsStore = false
		c.SupportsDeveloperRole = false
		c.MaxTokensField = types.MaxTokensFieldMaxTokens

	case provider.IsKnown(types.ProviderOpenRouter), strings.Contains(url, "openrouter.ai"):
		c.SupportsStore = false
		c.MaxTokensField = types.MaxTokensFieldMaxTokens

	case provider.IsKnown(types.ProviderOpenAI), strings.Contains(url, "api.openai.com"):
		// baseline already matches OpenAI itself.
	}

	return c
}

// resolveCompat merges detected compat with explicit per-model
// overrides. A non-nil override field always wins over detection.
func resolveCompat(detected Compat, overrides *types.CompatOverrides) Compat {
	if overrides == nil {
		return detected
	}
	c := detected
	if overrides.SupportsStore != nil {
		c.SupportsStore = *overrides.SupportsStore
	}
	if overrides.SupportsDeveloperRole != nil {
		c.SupportsDeveloperRole = *overrides.SupportsDeveloperRole
	}
	if overrides.SupportsReasoningEffort != nil {
		c.SupportsReasoningEffort = *overrides.SupportsReasoningEffort
	}
	if overrides.SupportsUsageInStreaming != nil {
		c.SupportsUsageInStreaming = *overrides.SupportsUsageInStreaming
	}
	if overrides.MaxTokensField != nil {
		c.MaxTokensField = *overrides.MaxTokensField
	}
	if overrides.RequiresToolResultName != nil {
		c.RequiresToolResultName = *overrides.RequiresToolResultName
	}
	if overrides.RequiresAssistantAfterToolResult != nil {
		c.RequiresAssistantAfterToolResult = *overrides.RequiresAssistantAfterToolResult
	}
	if overrides.RequiresThinkingAsText != nil {
		c.RequiresThinkingAsText = *overrides.RequiresThinkingAsText
	}
	if overrides.RequiresMistralToolIDs != nil {
		c.RequiresMistralToolIDs = *overrides.RequiresMistralToolIDs
	}
	if overrides.ThinkingFormat != nil {
		c.ThinkingFormat = *overrides.ThinkingFormat
	}
	return c
}

// ResolveCompat is the exported entrypoint used by the provider and
// by tests: detect from the model descriptor, then apply its
// overrides.
func ResolveCompat(model types.Model) Compat {
	return resolveCompat(detectCompat(model.BaseURL, model.Provider), model.Compat)
}
