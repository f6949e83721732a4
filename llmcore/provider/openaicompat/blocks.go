package openaicompat

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/BaSui01/agentflow/llmcore/types"
)

type blockKind int

const (
	blockNone blockKind = iota
	blockText
	blockThinking
	blockToolCall
)

// Machine accumulates a single provider response from a sequence of
// wire chunks into a types.AssistantMessage, emitting the
// Start/Delta/End event sequence for each content block as it goes.
//
// A block never spans a gap: once content of a different kind
// arrives, the open block is closed (an End event fires) before the
// new one starts.
type Machine struct {
	msg     types.AssistantMessage
	current blockKind
	index   int

	textBuf     strings.Builder
	thinkingBuf strings.Builder

	toolCallID   types.ToolCallID
	toolCallName string
	toolArgsBuf  strings.Builder

	thinkingTag string
}

// NewMachine seeds a Machine for a completion against model.
func NewMachine(model types.Model) *Machine {
	return &Machine{
		msg: types.AssistantMessage{
			API:      model.API,
			Provider: model.Provider,
			Model:    model.ID,
		},
		current: blockNone,
	}
}

// Start returns the initial Start event, carrying the empty message.
func (m *Machine) Start() types.AssistantMessageEvent {
	return types.AssistantMessageEvent{Kind: types.EventStart, Partial: m.msg.Clone()}
}

// HandleChunk folds one wire chunk into the accumulated message and
// returns the events it produces, in order.
func (m *Machine) HandleChunk(chunk streamChunk) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent

	for _, choice := range chunk.Choices {
		delta := choice.Delta

		if delta.Content != "" {
			events = append(events, m.handleText(delta.Content)...)
		}

		events = append(events, m.emitReasoning(delta)...)

		if len(delta.ToolCalls) > 0 {
			events = append(events, m.handleToolCalls(delta.ToolCalls)...)
		}

		if choice.FinishReason != nil {
			events = append(events, m.finish(*choice.FinishReason)...)
		}
	}

	if chunk.Usage != nil {
		m.msg.Usage = usageFromChunk(*chunk.Usage)
	}

	return events
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// emitReasoning inspects delta's reasoning fields in priority order —
// reasoning_details[*].text, reasoning_content, reasoning,
// reasoning_text — and routes the first non-empty match to
// handleThinking tagged with the field it came from.
func (m *Machine) emitReasoning(delta streamDelta) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent
	for _, d := range delta.ReasoningDetails {
		if d.Text != "" {
			events = append(events, m.handleThinking(d.Text, "reasoning_details")...)
		}
	}
	if len(delta.ReasoningDetails) > 0 {
		return events
	}

	if delta.ReasoningContent != "" {
		return m.handleThinking(delta.ReasoningContent, "reasoning_content")
	}
	if delta.Reasoning != "" {
		return m.handleThinking(delta.Reasoning, "reasoning")
	}
	if delta.ReasoningText != "" {
		return m.handleThinking(delta.ReasoningText, "reasoning_text")
	}
	return nil
}

func (m *Machine) handleText(delta string) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent
	if m.current != blockText {
		events = append(events, m.finishCurrentBlock()...)
		m.textBuf.Reset()
		m.msg.Content = append(m.msg.Content, types.NewText(""))
		m.index = len(m.msg.Content) - 1
		m.current = blockText
		events = append(events, types.AssistantMessageEvent{
			Kind: types.EventTextStart, ContentIndex: m.index, Partial: m.msg.Clone(),
		})
	}
	m.textBuf.WriteString(delta)
	m.msg.Content[m.index] = types.NewText(m.textBuf.String())
	events = append(events, types.AssistantMessageEvent{
		Kind: types.EventTextDelta, ContentIndex: m.index, Delta: delta, Partial: m.msg.Clone(),
	})
	return events
}

func (m *Machine) handleThinking(delta, tag string) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent
	if m.current != blockThinking {
		events = append(events, m.finishCurrentBlock()...)
		m.thinkingBuf.Reset()
		m.thinkingTag = tag
		m.msg.Content = append(m.msg.Content, types.NewThinkingTagged("", tag))
		m.index = len(m.msg.Content) - 1
		m.current = blockThinking
		events = append(events, types.AssistantMessageEvent{
			Kind: types.EventThinkingStart, ContentIndex: m.index, Partial: m.msg.Clone(),
		})
	}
	m.thinkingBuf.WriteString(delta)
	m.msg.Content[m.index] = types.NewThinkingTagged(m.thinkingBuf.String(), m.thinkingTag)
	events = append(events, types.AssistantMessageEvent{
		Kind: types.EventThinkingDelta, ContentIndex: m.index, Delta: delta, Partial: m.msg.Clone(),
	})
	return events
}

func (m *Machine) handleToolCalls(calls []streamToolCall) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent

	// Providers stream a single in-progress tool call per chunk in
	// practice; a fresh id/name marks the start of a new call.
	for _, tc := range calls {
		if tc.ID != "" || tc.Function.Name != "" {
			events = append(events, m.finishCurrentBlock()...)
			m.toolArgsBuf.Reset()
			m.toolCallID = types.ToolCallID(tc.ID)
			m.toolCallName = tc.Function.Name
			m.msg.Content = append(m.msg.Content, types.NewToolCall(m.toolCallID, m.toolCallName, nil))
			m.index = len(m.msg.Content) - 1
			m.current = blockToolCall
			events = append(events, types.AssistantMessageEvent{
				Kind: types.EventToolCallStart, ContentIndex: m.index, Partial: m.msg.Clone(),
			})
		}

		if tc.Function.Arguments != "" && m.current == blockToolCall {
			m.toolArgsBuf.WriteString(tc.Function.Arguments)
			events = append(events, types.AssistantMessageEvent{
				Kind: types.EventToolCallDelta, ContentIndex: m.index, Delta: tc.Function.Arguments, Partial: m.msg.Clone(),
			})
		}
	}

	return events
}

// finishCurrentBlock closes whatever block is open, emitting its End
// event, and resets to blockNone. It is a no-op if nothing is open.
func (m *Machine) finishCurrentBlock() []types.AssistantMessageEvent {
	switch m.current {
	case blockText:
		m.current = blockNone
		return []types.AssistantMessageEvent{{
			Kind: types.EventTextEnd, ContentIndex: m.index, Content: m.textBuf.String(), Partial: m.msg.Clone(),
		}}
	case blockThinking:
		m.current = blockNone
		return []types.AssistantMessageEvent{{
			Kind: types.EventThinkingEnd, ContentIndex: m.index, Content: m.thinkingBuf.String(), Partial: m.msg.Clone(),
		}}
	case blockToolCall:
		m.current = blockNone
		args := parseToolArguments(m.toolArgsBuf.String())
		tc := types.NewToolCall(m.toolCallID, m.toolCallName, args)
		m.msg.Content[m.index] = tc
		return []types.AssistantMessageEvent{{
			Kind: types.EventToolCallEnd, ContentIndex: m.index, ToolCall: &tc, Partial: m.msg.Clone(),
		}}
	default:
		return nil
	}
}

// parseToolArguments resolves the accumulated argument text into a
// structured value. gjson tolerates the value being read mid-stream
// on every delta in callers that want a live preview; here it is
// applied once the block closes, so Valid is the only check needed
// before trusting Value(). Empty or invalid text yields an empty
// object.
func parseToolArguments(raw string) any {
	if raw == "" {
		return map[string]any{}
	}
	if !gjson.Valid(raw) {
		return map[string]any{}
	}
	return gjson.Parse(raw).Value()
}

// finish closes any open block and produces the terminal event for
// finishReason.
func (m *Machine) finish(finishReason string) []types.AssistantMessageEvent {
	events := m.finishCurrentBlock()

	reason := mapStopReason(finishReason)
	m.msg.StopReason = reason

	kind := types.EventDone
	var ev types.AssistantMessageEvent
	if reason == types.StopReasonError {
		msg := "content filtered"
		m.msg.ErrorMessage = &msg
		ev = types.AssistantMessageEvent{Kind: types.EventError, ErrorReason: types.ErrorReasonError, Message: m.msg.Clone()}
	} else {
		ev = types.AssistantMessageEvent{Kind: kind, DoneReason: doneReasonOf(reason), Message: m.msg.Clone()}
	}
	return append(events, ev)
}

func doneReasonOf(r types.StopReason) types.StopReasonSuccess {
	switch r {
	case types.StopReasonLength:
		return types.DoneLength
	case types.StopReasonToolUse:
		return types.DoneToolUse
	default:
		return types.DoneStop
	}
}

// mapStopReason translates an OpenAI-compatible finish_reason into
// the canonical StopReason.
func mapStopReason(finishReason string) types.StopReason {
	switch finishReason {
	case "stop":
		return types.StopReasonStop
	case "length":
		return types.StopReasonLength
	case "tool_calls", "function_call":
		return types.StopReasonToolUse
	case "content_filter":
		return types.StopReasonError
	default:
		return types.StopReasonStop
	}
}

func usageFromChunk(u streamUsage) types.Usage {
	usage := types.Usage{
		Input:       u.PromptTokens,
		Output:      u.CompletionTokens,
		TotalTokens: u.TotalTokens,
		CacheRead:   u.CacheReadInputTokens,
		CacheWrite:  u.CacheCreationInputTokens,
	}
	if u.PromptTokensDetails != nil {
		if usage.CacheRead == 0 {
			usage.CacheRead = u.PromptTokensDetails.CachedTokens
		}
		if usage.CacheWrite == 0 {
			usage.CacheWrite = u.PromptTokensDetails.CacheWriteTokens
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.Input + usage.Output
	}

	switch {
	case u.CostDetails != nil && u.CostDetails.UpstreamInferenceCost != nil:
		usage.Cost.Total = *u.CostDetails.UpstreamInferenceCost
	case u.Cost != nil:
		usage.Cost.Total = *u.Cost
	}

	return usage
}
