// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package minimax adapts the OpenAI-compatible chat-completions dialect
to MiniMax's specific quirks: a forced max_tokens field, mandatory
streaming usage, reasoning_split for reasoning-capable models, and a
fallback to parsing inline <think>...</think> tags out of the content
stream on models that don't report reasoning as a separate field.
*/
package minimax
