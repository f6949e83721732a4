package transform

import (
	"time"

	"github.com/BaSui01/agentflow/llmcore/types"
)

// NormalizeToolCallID rewrites a tool-call id for a different target
// model; assistant is the message the call originally belonged to,
// for callers that key normalization off model-specific id formats.
type NormalizeToolCallID func(id string, target types.TargetModel, assistant types.AssistantMessage) string

// Messages rewrites messages for replay against target. normalize may
// be nil, in which case tool-call ids pass through unchanged.
func Messages(messages []types.Message, target types.TargetModel, normalize NormalizeToolCallID) []types.Message {
	idMap := map[types.ToolCallID]types.ToolCallID{}

	transformed := make([]types.Message, 0, len(messages))
	for _, msg := range messages {
		if out := transformMessage(msg, target, normalize, idMap); out != nil {
			transformed = append(transformed, out)
		}
	}

	return insertSyntheticToolResults(transformed)
}

func transformMessage(msg types.Message, target types.TargetModel, normalize NormalizeToolCallID, idMap map[types.ToolCallID]types.ToolCallID) types.Message {
	switch m := msg.(type) {
	case types.UserMessage:
		return m

	case types.ToolResultMessage:
		id := m.ToolCallID
		if mapped, ok := idMap[id]; ok {
			id = mapped
		}
		out := m
		out.ToolCallID = id
		return out

	case types.AssistantMessage:
		if m.StopReason == types.StopReasonError || m.StopReason == types.StopReasonAborted {
			return nil
		}

		sameModel := isSameModelProvider(m, target)

		content := make([]types.Content, 0, len(m.Content))
		for _, block := range m.Content {
			if out := transformContentBlock(block, sameModel, target, m, normalize, idMap); out != nil {
				content = append(content, out)
			}
		}

		out := m
		out.Content = content
		return out

	default:
		return nil
	}
}

func isSameModelProvider(m types.AssistantMessage, target types.TargetModel) bool {
	return m.Provider == target.Provider && m.API == target.API && m.Model == target.ModelID
}

func transformContentBlock(block types.Content, sameModel bool, target types.TargetModel, assistant types.AssistantMessage, normalize NormalizeToolCallID, idMap map[types.ToolCallID]types.ToolCallID) types.Content {
	switch b := block.(type) {
	case types.ThinkingContent:
		if sameModel && b.ThinkingSignature != nil {
			return b
		}
		if trimSpace(b.Thinking) == "" {
			return nil
		}
		if sameModel {
			return b
		}
		return types.NewText(b.Thinking)

	case types.TextContent:
		if sameModel {
			return b
		}
		return types.TextContent{Text: b.Text}

	case types.ToolCallContent:
		newCall := b
		if !sameModel {
			newCall.ThoughtSignature = nil
			if normalize != nil {
				normalizedID := types.ToolCallID(normalize(b.ID.String(), target, assistant))
				if normalizedID != b.ID {
					idMap[b.ID] = normalizedID
					newCall.ID = normalizedID
				}
			}
		}
		return newCall

	case types.ImageContent:
		return b

	default:
		return block
	}
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func insertSyntheticToolResults(messages []types.Message) []types.Message {
	var result []types.Message
	var pending []types.ToolCallContent
	existing := map[types.ToolCallID]struct{}{}

	for _, msg := range messages {
		switch m := msg.(type) {
		case types.AssistantMessage:
			result = insertOrphanedResults(result, pending, existing)
			pending = nil
			existing = map[types.ToolCallID]struct{}{}

			for _, block := range m.Content {
				if tc, ok := block.(types.ToolCallContent); ok {
					pending = append(pending, tc)
				}
			}
			result = append(result, m)

		case types.ToolResultMessage:
			existing[m.ToolCallID] = struct{}{}
			result = append(result, m)

		case types.UserMessage:
			result = insertOrphanedResults(result, pending, existing)
			pending = nil
			existing = map[types.ToolCallID]struct{}{}
			result = append(result, m)

		default:
			result = append(result, msg)
		}
	}

	result = insertOrphanedResults(result, pending, existing)
	return result
}

func insertOrphanedResults(result []types.Message, pending []types.ToolCallContent, existing map[types.ToolCallID]struct{}) []types.Message {
	for _, tc := range pending {
		if _, ok := existing[tc.ID]; ok {
			continue
		}
		text := types.NewText("No result provided")
		result = append(result, types.ToolResultMessage{
			ToolCallID: tc.ID,
			ToolName:   tc.Name,
			Content:    []types.ToolResultContent{{Text: &text}},
			IsError:    true,
			Timestamp:  time.Now().UnixMilli(),
		})
	}
	return result
}
