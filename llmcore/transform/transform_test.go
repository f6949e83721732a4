package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentflow/llmcore/types"
)

func makeAssistant(api types.API, provider types.KnownProvider, model string, content ...types.Content) types.AssistantMessage {
	return types.AssistantMessage{
		API:      api,
		Provider: types.KnownProviderOf(provider),
		Model:    model,
		Content:  content,
	}
}

func makeTarget(api types.API, provider types.KnownProvider, model string) types.TargetModel {
	return types.TargetModel{API: api, Provider: types.KnownProviderOf(provider), ModelID: model}
}

func makeUser(text string) types.UserMessage {
	return types.UserMessage{Content: types.TextUserContent(text)}
}

func toOpenAI(content types.Content) []types.Message {
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat", content)
	target := makeTarget(types.APIOpenAICompletions, types.ProviderOpenAI, "gpt-4o")
	return Messages([]types.Message{assistant}, target, nil)
}

func singleAssistant(t *testing.T, messages []types.Message) types.AssistantMessage {
	t.Helper()
	require.Len(t, messages, 1)
	a, ok := messages[0].(types.AssistantMessage)
	require.True(t, ok)
	return a
}

func TestUserMessagePassthrough(t *testing.T) {
	target := makeTarget(types.APIOpenAICompletions, types.ProviderOpenAI, "gpt-4o")
	result := Messages([]types.Message{makeUser("Hello")}, target, nil)

	require.Len(t, result, 1)
	_, ok := result[0].(types.UserMessage)
	assert.True(t, ok)
}

func TestFilterErrorMessages(t *testing.T) {
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat", types.NewText("Some text"))
	assistant.StopReason = types.StopReasonError
	errMsg := "API error"
	assistant.ErrorMessage = &errMsg

	messages := []types.Message{makeUser("Hello"), assistant}
	target := makeTarget(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat")
	result := Messages(messages, target, nil)

	require.Len(t, result, 1)
	_, ok := result[0].(types.UserMessage)
	assert.True(t, ok)
}

func TestFilterAbortedMessages(t *testing.T) {
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat", types.NewText("Partial"))
	assistant.StopReason = types.StopReasonAborted

	target := makeTarget(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat")
	result := Messages([]types.Message{assistant}, target, nil)

	assert.Empty(t, result)
}

func TestThinkingSameModelWithSignature(t *testing.T) {
	sig := "sig123"
	thinking := types.ThinkingContent{Thinking: "Let me think...", ThinkingSignature: &sig}
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat", thinking)

	target := makeTarget(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat")
	result := Messages([]types.Message{assistant}, target, nil)

	a := singleAssistant(t, result)
	require.Len(t, a.Content, 1)
	_, ok := a.Content[0].(types.ThinkingContent)
	assert.True(t, ok)
}

func TestThinkingDifferentModelToText(t *testing.T) {
	sig := "sig123"
	thinking := types.ThinkingContent{Thinking: "Let me think about this carefully.", ThinkingSignature: &sig}
	result := toOpenAI(thinking)

	a := singleAssistant(t, result)
	require.Len(t, a.Content, 1)
	text, ok := a.Content[0].(types.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Let me think about this carefully.", text.Text)
	assert.Nil(t, text.TextSignature)
}

func TestEmptyThinkingFiltered(t *testing.T) {
	thinking := types.ThinkingContent{Thinking: "   "}
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat", thinking, types.NewText("Hello!"))

	target := makeTarget(types.APIOpenAICompletions, types.ProviderOpenAI, "gpt-4o")
	result := Messages([]types.Message{assistant}, target, nil)

	a := singleAssistant(t, result)
	require.Len(t, a.Content, 1)
	_, ok := a.Content[0].(types.TextContent)
	assert.True(t, ok)
}

func TestTextSignatureStrippedForDifferentModel(t *testing.T) {
	sig := "sig456"
	text := types.TextContent{Text: "Hello", TextSignature: &sig}
	result := toOpenAI(text)

	a := singleAssistant(t, result)
	tc, ok := a.Content[0].(types.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Hello", tc.Text)
	assert.Nil(t, tc.TextSignature)
}

func TestToolCallIDNormalization(t *testing.T) {
	sig := "sig"
	toolCall := types.ToolCallContent{
		ID:               "original-id-123",
		Name:             "search",
		Arguments:        map[string]any{"query": "test"},
		ThoughtSignature: &sig,
	}
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat", toolCall)

	text := types.NewText("results")
	toolResult := types.ToolResultMessage{
		ToolCallID: "original-id-123",
		ToolName:   "search",
		Content:    []types.ToolResultContent{{Text: &text}},
	}

	messages := []types.Message{assistant, toolResult}
	target := makeTarget(types.APIOpenAICompletions, types.ProviderOpenAI, "gpt-4o")

	normalize := func(id string, _ types.TargetModel, _ types.AssistantMessage) string {
		return "call_" + strings.ReplaceAll(id, "-", "_")
	}

	result := Messages(messages, target, normalize)
	require.Len(t, result, 2)

	a, ok := result[0].(types.AssistantMessage)
	require.True(t, ok)
	tc, ok := a.Content[0].(types.ToolCallContent)
	require.True(t, ok)
	assert.Equal(t, types.ToolCallID("call_original_id_123"), tc.ID)
	assert.Nil(t, tc.ThoughtSignature)

	r, ok := result[1].(types.ToolResultMessage)
	require.True(t, ok)
	assert.Equal(t, types.ToolCallID("call_original_id_123"), r.ToolCallID)
}

func TestOrphanedToolCallSyntheticResult(t *testing.T) {
	toolCall := types.ToolCallContent{ID: "call-123", Name: "search", Arguments: map[string]any{"query": "test"}}
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat", toolCall)

	messages := []types.Message{assistant, makeUser("Never mind")}
	target := makeTarget(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat")
	result := Messages(messages, target, nil)

	require.Len(t, result, 3)
	_, ok := result[0].(types.AssistantMessage)
	assert.True(t, ok)

	r, ok := result[1].(types.ToolResultMessage)
	require.True(t, ok)
	assert.Equal(t, types.ToolCallID("call-123"), r.ToolCallID)
	assert.Equal(t, "search", r.ToolName)
	assert.True(t, r.IsError)

	_, ok = result[2].(types.UserMessage)
	assert.True(t, ok)
}

func TestMultipleToolCallsPartialResults(t *testing.T) {
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat",
		types.ToolCallContent{ID: "call-1", Name: "tool_a", Arguments: map[string]any{}},
		types.ToolCallContent{ID: "call-2", Name: "tool_b", Arguments: map[string]any{}},
	)

	text := types.NewText("result a")
	result1 := types.ToolResultMessage{
		ToolCallID: "call-1",
		ToolName:   "tool_a",
		Content:    []types.ToolResultContent{{Text: &text}},
	}

	messages := []types.Message{assistant, result1, makeUser("Continue")}
	target := makeTarget(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat")
	result := Messages(messages, target, nil)

	require.Len(t, result, 4)

	var synthetic *types.ToolResultMessage
	for _, m := range result {
		if r, ok := m.(types.ToolResultMessage); ok && r.ToolCallID == "call-2" {
			r := r
			synthetic = &r
		}
	}
	require.NotNil(t, synthetic)
	assert.True(t, synthetic.IsError)
	assert.Equal(t, "tool_b", synthetic.ToolName)
}

func TestNoSyntheticWhenAllResultsPresent(t *testing.T) {
	assistant := makeAssistant(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat",
		types.ToolCallContent{ID: "call-1", Name: "search", Arguments: map[string]any{}},
	)

	text := types.NewText("found it")
	result1 := types.ToolResultMessage{
		ToolCallID: "call-1",
		ToolName:   "search",
		Content:    []types.ToolResultContent{{Text: &text}},
	}

	messages := []types.Message{assistant, result1}
	target := makeTarget(types.APIMinimaxCompletions, types.ProviderMinimax, "abab6.5s-chat")
	result := Messages(messages, target, nil)

	assert.Len(t, result, 2)
}

func TestImageContentPassthrough(t *testing.T) {
	image := types.ImageContent{Data: []byte{1, 2, 3}, MimeType: "image/png"}
	result := toOpenAI(image)

	a := singleAssistant(t, result)
	_, ok := a.Content[0].(types.ImageContent)
	assert.True(t, ok)
}
