package minimax

import (
	"encoding/base64"
	"encoding/json"

	"github.com/BaSui01/agentflow/llmcore/types"
)

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

func imageDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func convertMessages(ctx types.Context) []requestMessage {
	var out []requestMessage

	if ctx.SystemPrompt != nil && *ctx.SystemPrompt != "" {
		out = append(out, requestMessage{Role: "system", Content: *ctx.SystemPrompt})
	}

	for _, msg := range ctx.Messages {
		switch m := msg.(type) {
		case types.UserMessage:
			out = append(out, convertUserMessage(m))
		case types.AssistantMessage:
			out = append(out, convertAssistantMessage(m))
		case types.ToolResultMessage:
			out = append(out, convertToolResult(m))
		}
	}

	return out
}

func convertUserMessage(m types.UserMessage) requestMessage {
	if !m.Content.Multi {
		return requestMessage{Role: "user", Content: m.Content.Text}
	}

	var parts []map[string]any
	for _, block := range m.Content.Blocks {
		switch {
		case block.Text != nil:
			parts = append(parts, map[string]any{"type": "text", "text": block.Text.Text})
		case block.Image != nil:
			parts = append(parts, map[string]any{
				"type":      "image_url",
				"image_url": map[string]any{"url": imageDataURL(block.Image.MimeType, block.Image.Data)},
			})
		}
	}
	return requestMessage{Role: "user", Content: parts}
}

// convertAssistantMessage replays prior thinking blocks as inline
// <think> tags: MiniMax has no separate reasoning field on inbound
// messages, only on its own outbound stream.
func convertAssistantMessage(m types.AssistantMessage) requestMessage {
	req := requestMessage{Role: "assistant"}

	var text string
	for _, block := range m.Content {
		switch b := block.(type) {
		case types.TextContent:
			text += b.Text
		case types.ThinkingContent:
			if b.Thinking != "" {
				text += "<think>" + b.Thinking + "</think>"
			}
		}
	}
	if text != "" {
		req.Content = text
	}

	for _, block := range m.Content {
		tc, ok := block.(types.ToolCallContent)
		if !ok {
			continue
		}
		req.ToolCalls = append(req.ToolCalls, requestToolCall{
			ID:   tc.ID.String(),
			Type: "function",
			Function: requestToolFunction{
				Name:      tc.Name,
				Arguments: marshalArguments(tc.Arguments),
			},
		})
	}

	return req
}

func convertToolResult(m types.ToolResultMessage) requestMessage {
	req := requestMessage{Role: "tool", ToolCallID: m.ToolCallID.String()}

	if len(m.Content) == 1 && m.Content[0].Text != nil && m.Content[0].Image == nil {
		req.Content = m.Content[0].Text.Text
		return req
	}

	var parts []map[string]any
	for _, block := range m.Content {
		switch {
		case block.Text != nil:
			parts = append(parts, map[string]any{"type": "text", "text": block.Text.Text})
		case block.Image != nil:
			parts = append(parts, map[string]any{
				"type":      "image_url",
				"image_url": map[string]any{"url": imageDataURL(block.Image.MimeType, block.Image.Data)},
			})
		}
	}
	req.Content = parts
	return req
}

func convertTools(tools []types.Tool) []requestTool {
	out := make([]requestTool, 0, len(tools))
	for _, t := range tools {
		out = append(out, requestTool{
			Type: "function",
			Function: requestToolFunction2{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

// buildParams assembles a MiniMax request body. Unlike the generic
// OpenAI-compatible dialect, MiniMax always sets stream_options and
// max_tokens, and only sets reasoning_split for reasoning-capable
// models. Temperature outside (0, 1] is clamped: MiniMax rejects 0
// and treats anything above 1 as undefined.
func buildParams(model types.Model, ctx types.Context, temperature *float64) requestBody {
	maxTokens := model.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	body := requestBody{
		Model:         model.ID,
		Messages:      convertMessages(ctx),
		Tools:         convertTools(ctx.Tools),
		Stream:        true,
		StreamOptions: streamOptions{IncludeUsage: true},
		MaxTokens:     maxTokens,
	}

	if model.Reasoning {
		split := true
		body.ReasoningSplit = &split
	}

	if temperature != nil {
		body.Temperature = clampTemperature(temperature)
	}

	return body
}

func clampTemperature(t *float64) *float64 {
	v := *t
	if v <= 0 {
		v = 0.01
	}
	if v > 1 {
		v = 1
	}
	return &v
}
