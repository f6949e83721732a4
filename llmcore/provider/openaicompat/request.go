package openaicompat

import "github.com/BaSui01/agentflow/llmcore/types"

// convertMessages renders a canonical Context into the OpenAI
// chat-completions message array, honoring the dialect quirks in c.
func convertMessages(ctx types.Context, c Compat) []requestMessage {
	var out []requestMessage

	if ctx.SystemPrompt != nil && *ctx.SystemPrompt != "" {
		role := "system"
		if c.SupportsDeveloperRole {
			role = "developer"
		}
		out = append(out, requestMessage{Role: role, Content: *ctx.SystemPrompt})
	}

	for _, msg := range ctx.Messages {
		switch m := msg.(type) {
		case types.UserMessage:
			out = append(out, convertUserMessage(m))
		case types.AssistantMessage:
			out = append(out, convertAssistantMessage(m, c))
		case types.ToolResultMessage:
			out = append(out, convertToolResult(m, c))
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
				"type": "image_url",
				"image_url": map[string]any{
					"url": imageDataURL(block.Image.MimeType, block.Image.Data),
				},
			})
		}
	}
	return requestMessage{Role: "user", Content: parts}
}

func convertAssistantMessage(m types.AssistantMessage, c Compat) requestMessage {
	req := requestMessage{Role: "assistant"}

	text := assistantTextParts(m.Content, c)
	if text != "" {
		req.Content = text
	}

	req.ToolCalls = assistantToolCalls(m.Content)
	return req
}

func assistantTextParts(content []types.Content, c Compat) string {
	var out string
	for _, block := range content {
		switch b := block.(type) {
		case types.TextContent:
			out += b.Text
		case types.ThinkingContent:
			if c.RequiresThinkingAsText && b.Thinking != "" {
				out += "<think>" + b.Thinking + "</think>"
			}
		}
	}
	return out
}

func assistantToolCalls(content []types.Content) []requestToolCall {
	var out []requestToolCall
	for _, block := range content {
		tc, ok := block.(types.ToolCallContent)
		if !ok {
			continue
		}
		out = append(out, requestToolCall{
			ID:   tc.ID.String(),
			Type: "function",
			Function: requestToolFunction{
				Name:      tc.Name,
				Arguments: marshalArguments(tc.Arguments),
			},
		})
	}
	return out
}

func convertToolResult(m types.ToolResultMessage, c Compat) requestMessage {
	req := requestMessage{Role: "tool", ToolCallID: m.ToolCallID.String()}
	if c.RequiresToolResultName {
		req.Name = m.ToolName
	}

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
				"type": "image_url",
				"image_url": map[string]any{
					"url": imageDataURL(block.Image.MimeType, block.Image.Data),
				},
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

// buildParams assembles the request body for a completion call
// against model, honoring the resolved dialect and reasoning effort.
func buildParams(model types.Model, ctx types.Context, c Compat, reasoningEffort string) requestBody {
	body := requestBody{
		Model:      model.ID,
		Messages:   convertMessages(ctx, c),
		Tools:      convertTools(ctx.Tools),
		Stream:     true,
		StreamOptions: &streamOptions{IncludeUsage: c.SupportsUsageInStreaming},
	}

	if model.MaxTokens > 0 {
		switch c.MaxTokensField {
		case types.MaxTokensFieldMaxCompletionTokens:
			body.MaxCompletionTokens = &model.MaxTokens
		default:
			body.MaxTokens = &model.MaxTokens
		}
	}

	if c.SupportsStore {
		store := false
		body.Store = &store
	}

	if c.SupportsReasoningEffort && reasoningEffort != "" {
		body.ReasoningEffort = reasoningEffort
	}

	return body
}
