package types

import "time"

// ToolCallID is a semantically transparent newtype over a string. It is
// equal to its string form on the wire but distinct in code so a bare
// string can't be substituted for a tool-call id by accident.
type ToolCallID string

func (id ToolCallID) String() string { return string(id) }

// IsEmpty reports whether the id carries no value.
func (id ToolCallID) IsEmpty() bool { return id == "" }

// Message is the closed set of conversation turn shapes: user input,
// an assistant's response, or a tool's result.
type Message interface {
	isMessage()
}

// UserMessage carries caller input: either plain text or an ordered
// sequence of blocks.
type UserMessage struct {
	Content   UserContent `json:"content"`
	Timestamp int64       `json:"timestamp"`
}

func (UserMessage) isMessage() {}

// UserContent is either a bare string or a sequence of blocks. Exactly
// one of Text or Blocks is populated; Multi reports which.
type UserContent struct {
	Multi bool
	Text  string
	Blocks []UserContentBlock
}

// TextUserContent builds a plain-string user content value.
func TextUserContent(text string) UserContent {
	return UserContent{Text: text}
}

// MultiUserContent builds a block-sequence user content value.
func MultiUserContent(blocks []UserContentBlock) UserContent {
	return UserContent{Multi: true, Blocks: blocks}
}

// UserContentBlock is either a text or an image fragment of user input.
type UserContentBlock struct {
	Text  *TextContent
	Image *ImageContent
}

// AssistantMessage is the accumulated output of a single provider call.
type AssistantMessage struct {
	Content      []Content `json:"content"`
	API          API       `json:"api"`
	Provider     Provider  `json:"provider"`
	Model        string    `json:"model"`
	Usage        Usage     `json:"usage"`
	StopReason   StopReason `json:"stop_reason"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	Timestamp    int64     `json:"timestamp"`
}

func (AssistantMessage) isMessage() {}

// Clone returns a deep-enough copy suitable for a per-event snapshot:
// the content slice is copied so later mutation of the original does
// not retroactively change an already-emitted partial.
func (m AssistantMessage) Clone() AssistantMessage {
	out := m
	out.Content = make([]Content, len(m.Content))
	copy(out.Content, m.Content)
	return out
}

// ToolResultMessage reports the outcome of executing a tool call.
type ToolResultMessage struct {
	ToolCallID ToolCallID          `json:"tool_call_id"`
	ToolName   string              `json:"tool_name"`
	Content    []ToolResultContent `json:"content"`
	Details    any                 `json:"details,omitempty"`
	IsError    bool                `json:"is_error"`
	Timestamp  int64               `json:"timestamp"`
}

func (ToolResultMessage) isMessage() {}

// ToolResultContent is either a text or an image fragment of a tool result.
type ToolResultContent struct {
	Text  *TextContent
	Image *ImageContent
}

// Context is the full conversation handed to a provider: optional
// system prompt, ordered messages, optional tool schemas.
type Context struct {
	SystemPrompt *string   `json:"system_prompt,omitempty"`
	Messages     []Message `json:"messages"`
	Tools        []Tool    `json:"tools,omitempty"`

	// ReasoningEffort and Temperature are per-call generation knobs.
	// Not every provider honors both: ReasoningEffort is read by
	// openaicompat, Temperature by minimax.
	ReasoningEffort string   `json:"reasoning_effort,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

func nowMillis() int64 { return time.Now().UnixMilli() }
