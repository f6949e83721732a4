package types

// Content is a single entry in an assistant message: text, thinking,
// image, or tool-call. Type reports the wire discriminator.
type Content interface {
	Type() string
}

// TextContent is a plain-text block, optionally carrying a
// provider-opaque signature that must be replayed verbatim for
// same-model multi-turn continuity.
type TextContent struct {
	Text          string  `json:"text"`
	TextSignature *string `json:"text_signature,omitempty"`
}

func (TextContent) Type() string { return "text" }

// NewText builds an unsigned text block.
func NewText(text string) TextContent { return TextContent{Text: text} }

// ThinkingContent is a reasoning block. Signature identifies which
// wire field produced it (e.g. "reasoning_content", "think_tag").
type ThinkingContent struct {
	Thinking          string  `json:"thinking"`
	ThinkingSignature *string `json:"thinking_signature,omitempty"`
}

func (ThinkingContent) Type() string { return "thinking" }

// NewThinking builds an unsigned thinking block.
func NewThinking(text string) ThinkingContent { return ThinkingContent{Thinking: text} }

// NewThinkingTagged builds a thinking block carrying the wire field
// name (tag) that produced text, e.g. "reasoning_details" or
// "think_tag".
func NewThinkingTagged(text, tag string) ThinkingContent {
	return ThinkingContent{Thinking: text, ThinkingSignature: &tag}
}

// ImageContent is inline image data.
type ImageContent struct {
	Data     []byte `json:"data"`
	MimeType string `json:"mime_type"`
}

func (ImageContent) Type() string { return "image" }

// ToolCallContent is a single tool invocation requested by the model.
type ToolCallContent struct {
	ID               ToolCallID `json:"id"`
	Name             string     `json:"name"`
	Arguments        any        `json:"arguments"`
	ThoughtSignature *string    `json:"thought_signature,omitempty"`
}

func (ToolCallContent) Type() string { return "toolCall" }

// NewToolCall builds a tool-call block with no thought signature.
func NewToolCall(id ToolCallID, name string, arguments any) ToolCallContent {
	return ToolCallContent{ID: id, Name: name, Arguments: arguments}
}
