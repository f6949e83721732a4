package types

// EventKind distinguishes the twelve kinds of AssistantMessageEvent
// named by the streaming contract.
type EventKind string

const (
	EventStart        EventKind = "start"
	EventTextStart     EventKind = "text_start"
	EventTextDelta     EventKind = "text_delta"
	EventTextEnd       EventKind = "text_end"
	EventThinkingStart EventKind = "thinking_start"
	EventThinkingDelta EventKind = "thinking_delta"
	EventThinkingEnd   EventKind = "thinking_end"
	EventToolCallStart EventKind = "tool_call_start"
	EventToolCallDelta EventKind = "tool_call_delta"
	EventToolCallEnd   EventKind = "tool_call_end"
	EventDone          EventKind = "done"
	EventError         EventKind = "error"
)

// StopReasonSuccess is the subset of StopReason that classifies a Done event.
type StopReasonSuccess string

const (
	DoneStop    StopReasonSuccess = "stop"
	DoneLength  StopReasonSuccess = "length"
	DoneToolUse StopReasonSuccess = "tool-use"
)

// ErrorReasonKind is the subset of StopReason that classifies an Error event.
type ErrorReasonKind string

const (
	ErrorReasonError   ErrorReasonKind = "error"
	ErrorReasonAborted ErrorReasonKind = "aborted"
)

// AssistantMessageEvent is the single struct used for every event kind
// pushed through the pipeline. Which fields are meaningful depends on
// Kind; ContentIndex/Delta/Content are unused for Start/Done/Error.
type AssistantMessageEvent struct {
	Kind EventKind

	// Partial is the assistant message snapshot at the moment this
	// event was produced. Always populated for non-terminal events.
	Partial AssistantMessage

	ContentIndex int
	Delta        string
	Content      string
	ToolCall     *ToolCallContent

	// DoneReason / ErrorReason / Message are populated only for the
	// terminal Done / Error kinds.
	DoneReason  StopReasonSuccess
	ErrorReason ErrorReasonKind
	Message     AssistantMessage
}
