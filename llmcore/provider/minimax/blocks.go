package minimax

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/BaSui01/agentflow/llmcore/thinktag"
	"github.com/BaSui01/agentflow/llmcore/types"
)

type blockKind int

const (
	blockNone blockKind = iota
	blockText
	blockThinking
	blockToolCall
)

// Machine accumulates a MiniMax response into a types.AssistantMessage.
// Reasoning arrives as an explicit delta field on models that report
// it; on models that don't, it is recovered by feeding the content
// field through a thinktag.Parser instead.
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
	tagParser   thinktag.Parser
}

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

func (m *Machine) Start() types.AssistantMessageEvent {
	return types.AssistantMessageEvent{Kind: types.EventStart, Partial: m.msg.Clone()}
}

func (m *Machine) HandleChunk(chunk streamChunk) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent

	for _, choice := range chunk.Choices {
		delta := choice.Delta

		explicit, reasoningEvents := m.emitExplicitReasoning(delta)
		events = append(events, reasoningEvents...)

		if delta.Content != "" {
			if explicit {
				events = append(events, m.handleText(delta.Content)...)
			} else {
				events = append(events, m.processContentWithFallback(delta.Content)...)
			}
		}

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

// emitExplicitReasoning applies MiniMax's field priority: reasoning_details
// entries (each own delta) beat the first non-empty of
// reasoning_content/reasoning/reasoning_text. It reports whether any
// explicit reasoning field was present so the caller knows whether to
// route delta.Content through the tag-parser fallback.
func (m *Machine) emitExplicitReasoning(delta streamDelta) (bool, []types.AssistantMessageEvent) {
	if len(delta.ReasoningDetails) > 0 {
		var events []types.AssistantMessageEvent
		for _, d := range delta.ReasoningDetails {
			if d.Text != "" {
				events = append(events, m.handleThinking(d.Text, "reasoning_details")...)
			}
		}
		return true, events
	}

	if delta.ReasoningContent != "" {
		return true, m.handleThinking(delta.ReasoningContent, "reasoning_content")
	}
	if delta.Reasoning != "" {
		return true, m.handleThinking(delta.Reasoning, "reasoning")
	}
	if delta.ReasoningText != "" {
		return true, m.handleThinking(delta.ReasoningText, "reasoning_text")
	}

	return false, nil
}

// processContentWithFallback feeds content through the <think> tag
// parser and converts recovered fragments into block events.
func (m *Machine) processContentWithFallback(content string) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent
	for _, frag := range m.tagParser.Feed(content) {
		switch frag.Kind {
		case thinktag.Text:
			events = append(events, m.handleText(frag.Content)...)
		case thinktag.Thinking:
			events = append(events, m.handleThinking(frag.Content, "think_tag")...)
		}
	}
	return events
}

func (m *Machine) flushThinkTagParser() []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent
	for _, frag := range m.tagParser.Flush() {
		switch frag.Kind {
		case thinktag.Text:
			events = append(events, m.handleText(frag.Content)...)
		case thinktag.Thinking:
			events = append(events, m.handleThinking(frag.Content, "think_tag")...)
		}
	}
	return events
}

func (m *Machine) handleText(delta string) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent
	if m.current != blockText {
		events = append(events, m.finishCurrentBlock()...)
		m.textBuf.Reset()
		m.msg.Content = append(m.msg.Content, types.NewText(""))
		m.index = len(m.msg.Content) - 1
		m.current = blockText
		events = append(events, types.AssistantMessageEvent{Kind: types.EventTextStart, ContentIndex: m.index, Partial: m.msg.Clone()})
	}
	m.textBuf.WriteString(delta)
	m.msg.Content[m.index] = types.NewText(m.textBuf.String())
	events = append(events, types.AssistantMessageEvent{Kind: types.EventTextDelta, ContentIndex: m.index, Delta: delta, Partial: m.msg.Clone()})
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
		events = append(events, types.AssistantMessageEvent{Kind: types.EventThinkingStart, ContentIndex: m.index, Partial: m.msg.Clone()})
	}
	m.thinkingBuf.WriteString(delta)
	m.msg.Content[m.index] = types.NewThinkingTagged(m.thinkingBuf.String(), m.thinkingTag)
	events = append(events, types.AssistantMessageEvent{Kind: types.EventThinkingDelta, ContentIndex: m.index, Delta: delta, Partial: m.msg.Clone()})
	return events
}

func (m *Machine) handleToolCalls(calls []streamToolCall) []types.AssistantMessageEvent {
	var events []types.AssistantMessageEvent

	for _, tc := range calls {
		if tc.ID != "" || tc.Function.Name != "" {
			events = append(events, m.finishCurrentBlock()...)
			m.toolArgsBuf.Reset()
			m.toolCallID = types.ToolCallID(tc.ID)
			m.toolCallName = tc.Function.Name
			m.msg.Content = append(m.msg.Content, types.NewToolCall(m.toolCallID, m.toolCallName, nil))
			m.index = len(m.msg.Content) - 1
			m.current = blockToolCall
			events = append(events, types.AssistantMessageEvent{Kind: types.EventToolCallStart, ContentIndex: m.index, Partial: m.msg.Clone()})
		}

		if tc.Function.Arguments != "" && m.current == blockToolCall {
			m.toolArgsBuf.WriteString(tc.Function.Arguments)
			events = append(events, types.AssistantMessageEvent{Kind: types.EventToolCallDelta, ContentIndex: m.index, Delta: tc.Function.Arguments, Partial: m.msg.Clone()})
		}
	}

	return events
}

func (m *Machine) finishCurrentBlock() []types.AssistantMessageEvent {
	switch m.current {
	case blockText:
		m.current = blockNone
		return []types.AssistantMessageEvent{{Kind: types.EventTextEnd, ContentIndex: m.index, Content: m.textBuf.String(), Partial: m.msg.Clone()}}
	case blockThinking:
		m.current = blockNone
		return []types.AssistantMessageEvent{{Kind: types.EventThinkingEnd, ContentIndex: m.index, Content: m.thinkingBuf.String(), Partial: m.msg.Clone()}}
	case blockToolCall:
		m.current = blockNone
		args := parseToolArguments(m.toolArgsBuf.String())
		tc := types.NewToolCall(m.toolCallID, m.toolCallName, args)
		m.msg.Content[m.index] = tc
		return []types.AssistantMessageEvent{{Kind: types.EventToolCallEnd, ContentIndex: m.index, ToolCall: &tc, Partial: m.msg.Clone()}}
	default:
		return nil
	}
}

func parseToolArguments(raw string) any {
	if raw == "" {
		return map[string]any{}
	}
	if !gjson.Valid(raw) {
		return map[string]any{}
	}
	return gjson.Parse(raw).Value()
}

func (m *Machine) finish(finishReason string) []types.AssistantMessageEvent {
	events := m.flushThinkTagParser()
	events = append(events, m.finishCurrentBlock()...)

	reason := mapStopReason(finishReason)
	m.msg.StopReason = reason

	if reason == types.StopReasonError {
		msg := "content filtered"
		m.msg.ErrorMessage = &msg
		return append(events, types.AssistantMessageEvent{Kind: types.EventError, ErrorReason: types.ErrorReasonError, Message: m.msg.Clone()})
	}
	return append(events, types.AssistantMessageEvent{Kind: types.EventDone, DoneReason: doneReasonOf(reason), Message: m.msg.Clone()})
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
	return usage
}
