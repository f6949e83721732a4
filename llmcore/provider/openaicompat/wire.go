package openaicompat

import "encoding/json"

// requestMessage is the OpenAI chat-completions wire shape for one
// conversation turn.
type requestMessage struct {
	Role       string          `json:"role"`
	Content    any             `json:"content,omitempty"`
	Name       string          `json:"name,omitempty"`
	ToolCalls  []requestToolCall `json:"tool_calls,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
}

type requestToolCall struct {
	ID       string              `json:"id"`
	Type     string              `json:"type"`
	Function requestToolFunction `json:"function"`
}

type requestToolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type requestTool struct {
	Type     string              `json:"type"`
	Function requestToolFunction2 `json:"function"`
}

type requestToolFunction2 struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

type requestBody struct {
	Model               string           `json:"model"`
	Messages            []requestMessage `json:"messages"`
	Tools               []requestTool    `json:"tools,omitempty"`
	ToolChoice          any              `json:"tool_choice,omitempty"`
	Stream              bool             `json:"stream"`
	StreamOptions       *streamOptions   `json:"stream_options,omitempty"`
	Temperature         *float64         `json:"temperature,omitempty"`
	TopP                *float64         `json:"top_p,omitempty"`
	MaxTokens           *uint32          `json:"max_tokens,omitempty"`
	MaxCompletionTokens *uint32          `json:"max_completion_tokens,omitempty"`
	Store               *bool            `json:"store,omitempty"`
	ReasoningEffort     string           `json:"reasoning_effort,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// streamChunk is one SSE `data:` payload from an OpenAI-compatible
// streaming response.
type streamChunk struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []streamChoice `json:"choices"`
	Usage   *streamUsage   `json:"usage,omitempty"`
}

type streamChoice struct {
	Index        int          `json:"index"`
	Delta        streamDelta  `json:"delta"`
	FinishReason *string      `json:"finish_reason"`
}

type streamDelta struct {
	Role             string            `json:"role,omitempty"`
	Content          string            `json:"content,omitempty"`
	ReasoningDetails []reasoningDetail `json:"reasoning_details,omitempty"`
	ReasoningContent string            `json:"reasoning_content,omitempty"`
	Reasoning        string            `json:"reasoning,omitempty"`
	ReasoningText    string            `json:"reasoning_text,omitempty"`
	ToolCalls        []streamToolCall  `json:"tool_calls,omitempty"`
}

// reasoningDetail is one entry of OpenRouter's `reasoning_details[]`,
// the highest-priority reasoning field in the extraction order.
type reasoningDetail struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

type streamToolCall struct {
	Index    int                `json:"index"`
	ID       string             `json:"id,omitempty"`
	Type     string             `json:"type,omitempty"`
	Function streamToolFunction `json:"function"`
}

type streamToolFunction struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

type streamUsage struct {
	PromptTokens             uint32                   `json:"prompt_tokens"`
	CompletionTokens         uint32                   `json:"completion_tokens"`
	TotalTokens              uint32                   `json:"total_tokens"`
	CacheReadInputTokens     uint32                   `json:"cache_read_input_tokens,omitempty"`
	CacheCreationInputTokens uint32                   `json:"cache_creation_input_tokens,omitempty"`
	PromptTokensDetails      *promptTokensDetails     `json:"prompt_tokens_details,omitempty"`
	CompletionTokensDetails  *completionTokensDetails `json:"completion_tokens_details,omitempty"`
	Cost                     *float64                 `json:"cost,omitempty"`
	CostDetails              *costDetails             `json:"cost_details,omitempty"`
}

type promptTokensDetails struct {
	CachedTokens     uint32 `json:"cached_tokens"`
	CacheWriteTokens uint32 `json:"cache_write_tokens,omitempty"`
}

type completionTokensDetails struct {
	ReasoningTokens uint32 `json:"reasoning_tokens"`
}

// costDetails carries OpenRouter's per-request cost breakdown.
type costDetails struct {
	UpstreamInferenceCost *float64 `json:"upstream_inference_cost,omitempty"`
}

func marshalArguments(v any) string {
	if v == nil {
		return "{}"
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
