package types

// MaxTokensField selects which request field carries the max-tokens
// budget, since providers disagree on the name.
type MaxTokensField string

const (
	MaxTokensFieldMaxTokens           MaxTokensField = "max_tokens"
	MaxTokensFieldMaxCompletionTokens MaxTokensField = "max_completion_tokens"
)

// ThinkingFormat selects how a reasoning-capable model expects its
// thinking parameter shaped.
type ThinkingFormat string

const (
	ThinkingFormatOpenAI   ThinkingFormat = "openai"
	ThinkingFormatZai      ThinkingFormat = "zai"
	ThinkingFormatThinkTag ThinkingFormat = "think-tag"
)

// CompatOverrides holds explicit per-model overrides for the resolved
// compatibility record. Unset fields fall back to detection.
type CompatOverrides struct {
	SupportsStore                    *bool
	SupportsDeveloperRole            *bool
	SupportsReasoningEffort          *bool
	SupportsUsageInStreaming         *bool
	MaxTokensField                   *MaxTokensField
	RequiresToolResultName           *bool
	RequiresAssistantAfterToolResult *bool
	RequiresThinkingAsText           *bool
	RequiresMistralToolIDs           *bool
	ThinkingFormat                   *ThinkingFormat
}
