package minimax

// BaseURLGlobal and BaseURLCN are MiniMax's two regional endpoints.
const (
	BaseURLGlobal = "https://api.minimax.io/v1/chat/completions"
	BaseURLCN     = "https://api.minimax.chat/v1/chat/completions"
)

type requestMessage struct {
	Role       string            `json:"role"`
	Content    any               `json:"content,omitempty"`
	Name       string            `json:"name,omitempty"`
	ToolCalls  []requestToolCall `json:"tool_calls,omitempty"`
	ToolCallID string            `json:"tool_call_id,omitempty"`
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
	Type     string               `json:"type"`
	Function requestToolFunction2 `json:"function"`
}

type requestToolFunction2 struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

type requestBody struct {
	Model          string           `json:"model"`
	Messages       []requestMessage `json:"messages"`
	Tools          []requestTool    `json:"tools,omitempty"`
	Stream         bool             `json:"stream"`
	StreamOptions  streamOptions    `json:"stream_options"`
	Temperature    *float64         `json:"temperature,omitempty"`
	TopP           *float64         `json:"top_p,omitempty"`
	MaxTokens      uint32           `json:"max_tokens"`
	ReasoningSplit *bool            `json:"reasoning_split,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type streamChunk struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []streamChoice `json:"choices"`
	Usage   *streamUsage   `json:"usage,omitempty"`
}

type streamChoice struct {
	Index        int         `json:"index"`
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type streamDelta struct {
	Role             string            `json:"role,omitempty"`
	Content          string            `json:"content,omitempty"`
	ReasoningContent string            `json:"reasoning_content,omitempty"`
	Reasoning        string            `json:"reasoning,omitempty"`
	ReasoningText    string            `json:"reasoning_text,omitempty"`
	ReasoningDetails []reasoningDetail `json:"reasoning_details,omitempty"`
	ToolCalls        []streamToolCall  `json:"tool_calls,omitempty"`
}

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
	PromptTokens             uint32               `json:"prompt_tokens"`
	CompletionTokens         uint32               `json:"completion_tokens"`
	TotalTokens              uint32               `json:"total_tokens"`
	CacheReadInputTokens     uint32               `json:"cache_read_input_tokens,omitempty"`
	CacheCreationInputTokens uint32               `json:"cache_creation_input_tokens,omitempty"`
	PromptTokensDetails      *promptTokensDetails `json:"prompt_tokens_details,omitempty"`
}

type promptTokensDetails struct {
	CachedTokens     uint32 `json:"cached_tokens"`
	CacheWriteTokens uint32 `json:"cache_write_tokens,omitempty"`
}
