package openaicompat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentflow/llmcore/types"
)

func testModel() types.Model {
	return types.Model{ID: "gpt-4", API: types.APIOpenAICompletions, Provider: types.KnownProviderOf(types.ProviderOpenAI)}
}

func finishReason(s string) *string { return &s }

func TestMachineTextThenDone(t *testing.T) {
	m := NewMachine(testModel())
	start := m.Start()
	assert.Equal(t, types.EventStart, start.Kind)

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{Content: "Hello"}},
	}})
	require.Len(t, events, 2)
	assert.Equal(t, types.EventTextStart, events[0].Kind)
	assert.Equal(t, types.EventTextDelta, events[1].Kind)
	assert.Equal(t, "Hello", events[1].Delta)

	events = m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{}, FinishReason: finishReason("stop")},
	}})
	require.Len(t, events, 2)
	assert.Equal(t, types.EventTextEnd, events[0].Kind)
	assert.Equal(t, "Hello", events[0].Content)
	assert.Equal(t, types.EventDone, events[1].Kind)
	assert.Equal(t, types.DoneStop, events[1].DoneReason)
	assert.Equal(t, types.StopReasonStop, events[1].Message.StopReason)
}

func TestMachineToolCall(t *testing.T) {
	m := NewMachine(testModel())
	m.Start()

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ToolCalls: []streamToolCall{{Index: 0, ID: "call_1", Function: streamToolFunction{Name: "search"}}}}},
	}})
	require.Len(t, events, 1)
	assert.Equal(t, types.EventToolCallStart, events[0].Kind)

	events = m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ToolCalls: []streamToolCall{{Index: 0, Function: streamToolFunction{Arguments: `{"q":`}}}}},
	}})
	require.Len(t, events, 1)
	assert.Equal(t, types.EventToolCallDelta, events[0].Kind)

	events = m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ToolCalls: []streamToolCall{{Index: 0, Function: streamToolFunction{Arguments: `"go"}`}}}}},
	}})
	require.Len(t, events, 1)

	events = m.HandleChunk(streamChunk{Choices: []streamChoice{
		{FinishReason: finishReason("tool_calls")},
	}})
	require.Len(t, events, 2)
	assert.Equal(t, types.EventToolCallEnd, events[0].Kind)
	require.NotNil(t, events[0].ToolCall)
	assert.Equal(t, "search", events[0].ToolCall.Name)
	assert.Equal(t, map[string]any{"q": "go"}, events[0].ToolCall.Arguments)
	assert.Equal(t, types.DoneToolUse, events[1].DoneReason)
}

func TestMachineTextThenToolCallClosesTextBlock(t *testing.T) {
	m := NewMachine(testModel())
	m.Start()

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{Content: "let me check "}},
	}})
	require.Len(t, events, 2)

	events = m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ToolCalls: []streamToolCall{{Index: 0, ID: "call_1", Function: streamToolFunction{Name: "search"}}}}},
	}})
	require.Len(t, events, 2)
	assert.Equal(t, types.EventTextEnd, events[0].Kind)
	assert.Equal(t, "let me check ", events[0].Content)
	assert.Equal(t, types.EventToolCallStart, events[1].Kind)
}

func TestMachineThinkingThenToolCallClosesThinkingBlock(t *testing.T) {
	m := NewMachine(testModel())
	m.Start()

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ReasoningContent: "let me think"}},
	}})
	require.Len(t, events, 2)

	events = m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ToolCalls: []streamToolCall{{Index: 0, ID: "call_1", Function: streamToolFunction{Name: "search"}}}}},
	}})
	require.Len(t, events, 2)
	assert.Equal(t, types.EventThinkingEnd, events[0].Kind)
	assert.Equal(t, types.EventToolCallStart, events[1].Kind)
}

func TestMachineOrphanToolCallContinuationIsDropped(t *testing.T) {
	m := NewMachine(testModel())
	m.Start()

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ToolCalls: []streamToolCall{{Index: 0, Function: streamToolFunction{Arguments: `{"q":"go"}`}}}}},
	}})
	assert.Empty(t, events)
}

func TestMachineOrphanToolCallContinuationAfterTextIsDropped(t *testing.T) {
	m := NewMachine(testModel())
	m.Start()

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{Content: "hello"}},
	}})
	require.Len(t, events, 2)

	events = m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ToolCalls: []streamToolCall{{Index: 0, Function: streamToolFunction{Arguments: `{"q":"go"}`}}}}},
	}})
	assert.Empty(t, events)
}

func TestMachineThinkingThenText(t *testing.T) {
	m := NewMachine(testModel())
	m.Start()

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ReasoningContent: "thinking..."}},
	}})
	require.Len(t, events, 2)
	assert.Equal(t, types.EventThinkingStart, events[0].Kind)

	events = m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{Content: "answer"}},
	}})
	require.Len(t, events, 3)
	assert.Equal(t, types.EventThinkingEnd, events[0].Kind)
	assert.Equal(t, "thinking...", events[0].Content)
	assert.Equal(t, types.EventTextStart, events[1].Kind)
	assert.Equal(t, types.EventTextDelta, events[2].Kind)
}

func TestMapStopReason(t *testing.T) {
	assert.Equal(t, types.StopReasonStop, mapStopReason("stop"))
	assert.Equal(t, types.StopReasonLength, mapStopReason("length"))
	assert.Equal(t, types.StopReasonToolUse, mapStopReason("tool_calls"))
	assert.Equal(t, types.StopReasonToolUse, mapStopReason("function_call"))
	assert.Equal(t, types.StopReasonError, mapStopReason("content_filter"))
	assert.Equal(t, types.StopReasonStop, mapStopReason("something_unknown"))
}

func TestUsageFromChunk(t *testing.T) {
	u := usageFromChunk(streamUsage{
		PromptTokens:        100,
		CompletionTokens:    50,
		TotalTokens:         150,
		PromptTokensDetails: &promptTokensDetails{CachedTokens: 20},
	})
	assert.Equal(t, uint32(100), u.Input)
	assert.Equal(t, uint32(50), u.Output)
	assert.Equal(t, uint32(20), u.CacheRead)
}

func TestUsageFromChunkFallsBackToInputPlusOutputWhenTotalMissing(t *testing.T) {
	u := usageFromChunk(streamUsage{PromptTokens: 100, CompletionTokens: 50})
	assert.Equal(t, uint32(150), u.TotalTokens)
}

func TestUsageFromChunkPrefersTopLevelCacheFieldsOverDetails(t *testing.T) {
	u := usageFromChunk(streamUsage{
		CacheReadInputTokens:     30,
		CacheCreationInputTokens: 9,
		PromptTokensDetails:      &promptTokensDetails{CachedTokens: 20, CacheWriteTokens: 5},
	})
	assert.Equal(t, uint32(30), u.CacheRead)
	assert.Equal(t, uint32(9), u.CacheWrite)
}

func TestUsageFromChunkFallsBackToDetailsCacheFields(t *testing.T) {
	u := usageFromChunk(streamUsage{
		PromptTokensDetails: &promptTokensDetails{CachedTokens: 20, CacheWriteTokens: 5},
	})
	assert.Equal(t, uint32(20), u.CacheRead)
	assert.Equal(t, uint32(5), u.CacheWrite)
}

func TestUsageFromChunkPrefersUpstreamInferenceCostOverCost(t *testing.T) {
	cost := 0.05
	upstream := 0.02
	u := usageFromChunk(streamUsage{Cost: &cost, CostDetails: &costDetails{UpstreamInferenceCost: &upstream}})
	assert.Equal(t, upstream, u.Cost.Total)
}

func TestUsageFromChunkFallsBackToCostWhenNoCostDetails(t *testing.T) {
	cost := 0.05
	u := usageFromChunk(streamUsage{Cost: &cost})
	assert.Equal(t, cost, u.Cost.Total)
}

func TestReasoningDetailsTakesPriorityOverOtherReasoningFields(t *testing.T) {
	m := NewMachine(testModel())
	m.Start()

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{
			ReasoningDetails: []reasoningDetail{{Text: "from details"}},
			ReasoningContent: "from content",
			Reasoning:        "from reasoning",
			ReasoningText:    "from text",
		}},
	}})
	require.Len(t, events, 2)
	require.Equal(t, types.EventThinkingStart, events[0].Kind)
	assert.Equal(t, "from details", events[1].Delta)
	thinking, ok := events[1].Partial.Content[0].(types.ThinkingContent)
	require.True(t, ok)
	require.NotNil(t, thinking.ThinkingSignature)
	assert.Equal(t, "reasoning_details", *thinking.ThinkingSignature)
}

func TestReasoningTextUsedWhenOtherFieldsEmpty(t *testing.T) {
	m := NewMachine(testModel())
	m.Start()

	events := m.HandleChunk(streamChunk{Choices: []streamChoice{
		{Delta: streamDelta{ReasoningText: "from text"}},
	}})
	require.Len(t, events, 2)
	assert.Equal(t, "from text", events[1].Delta)
	thinking, ok := events[1].Partial.Content[0].(types.ThinkingContent)
	require.True(t, ok)
	require.NotNil(t, thinking.ThinkingSignature)
	assert.Equal(t, "reasoning_text", *thinking.ThinkingSignature)
}
