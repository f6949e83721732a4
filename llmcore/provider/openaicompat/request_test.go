package openaicompat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentflow/llmcore/types"
)

func TestConvertUserMessageText(t *testing.T) {
	msg := convertUserMessage(types.UserMessage{Content: types.TextUserContent("hi")})
	assert.Equal(t, "user", msg.Role)
	assert.Equal(t, "hi", msg.Content)
}

func TestConvertAssistantMessageWithToolCall(t *testing.T) {
	c := defaultCompat()
	assistant := types.AssistantMessage{
		Content: []types.Content{
			types.NewText("checking"),
			types.NewToolCall("call_1", "search", map[string]any{"q": "go"}),
		},
	}
	msg := convertAssistantMessage(assistant, c)
	assert.Equal(t, "assistant", msg.Role)
	assert.Equal(t, "checking", msg.Content)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "call_1", msg.ToolCalls[0].ID)
	assert.Equal(t, "search", msg.ToolCalls[0].Function.Name)
}

func TestConvertToolResultSimpleText(t *testing.T) {
	c := defaultCompat()
	c.RequiresToolResultName = true
	text := types.NewText("42")
	result := types.ToolResultMessage{
		ToolCallID: "call_1",
		ToolName:   "search",
		Content:    []types.ToolResultContent{{Text: &text}},
	}
	msg := convertToolResult(result, c)
	assert.Equal(t, "tool", msg.Role)
	assert.Equal(t, "call_1", msg.ToolCallID)
	assert.Equal(t, "search", msg.Name)
	assert.Equal(t, "42", msg.Content)
}

func TestConvertSystemPromptDeveloperRole(t *testing.T) {
	c := defaultCompat()
	c.SupportsDeveloperRole = true
	prompt := "be helpful"
	msgs := convertMessages(types.Context{SystemPrompt: &prompt}, c)
	require.NotEmpty(t, msgs)
	assert.Equal(t, "developer", msgs[0].Role)
}

func TestBuildParamsMaxTokensField(t *testing.T) {
	model := types.Model{ID: "gpt-4", MaxTokens: 1024}
	c := Compat{MaxTokensField: types.MaxTokensFieldMaxTokens, SupportsUsageInStreaming: true}
	body := buildParams(model, types.Context{}, c, "")
	require.NotNil(t, body.MaxTokens)
	assert.Equal(t, uint32(1024), *body.MaxTokens)
	assert.Nil(t, body.MaxCompletionTokens)
}
