package overflow

import (
	"regexp"

	"github.com/BaSui01/agentflow/llmcore/types"
)

// overflowPatterns are known provider phrasings of a context-overflow
// error. Compiled once at package init instead of behind a
// once-guarded lazy static, since Go initializes package-level vars
// before any other code in the package runs.
var overflowPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)prompt is too long`),                        // Anthropic
	regexp.MustCompile(`(?i)input is too long for requested model`),     // Amazon Bedrock
	regexp.MustCompile(`(?i)exceeds the context window`),                // OpenAI
	regexp.MustCompile(`(?i)input token count.*exceeds the maximum`),    // Google Gemini
	regexp.MustCompile(`(?i)maximum prompt length is \d+`),              // xAI Grok
	regexp.MustCompile(`(?i)reduce the length of the messages`),         // Groq
	regexp.MustCompile(`(?i)maximum context length is \d+ tokens`),      // OpenRouter
	regexp.MustCompile(`(?i)exceeds the limit of \d+`),                  // GitHub Copilot
	regexp.MustCompile(`(?i)exceeds the available context size`),       // llama.cpp
	regexp.MustCompile(`(?i)greater than the context length`),          // LM Studio
	regexp.MustCompile(`(?i)context window exceeds limit`),             // MiniMax
	regexp.MustCompile(`(?i)context[_ ]length[_ ]exceeded`),
	regexp.MustCompile(`(?i)too many tokens`),
	regexp.MustCompile(`(?i)token limit exceeded`),
}

// statusCodePattern matches providers (Cerebras, Mistral) that return
// a bare status code with no body on overflow.
var statusCodePattern = regexp.MustCompile(`(?i)^4(00|13|29)\s*(status code)?\s*\(no body\)`)

// IsContextOverflow reports whether msg represents a context-window
// overflow, either as a recognized error message or, when
// contextWindow is known, as a silent truncation where reported input
// usage already exceeds it.
func IsContextOverflow(msg types.AssistantMessage, contextWindow *uint32) bool {
	if msg.StopReason == types.StopReasonError && msg.ErrorMessage != nil {
		errMsg := *msg.ErrorMessage
		for _, p := range overflowPatterns {
			if p.MatchString(errMsg) {
				return true
			}
		}
		if statusCodePattern.MatchString(errMsg) {
			return true
		}
	}

	if contextWindow != nil && msg.StopReason == types.StopReasonStop {
		inputTokens := msg.Usage.Input + msg.Usage.CacheRead
		if inputTokens > *contextWindow {
			return true
		}
	}

	return false
}

// Patterns returns the overflow detection patterns, for tests that
// want to assert on their shape rather than duplicate them.
func Patterns() []*regexp.Regexp {
	return overflowPatterns
}
