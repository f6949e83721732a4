// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package openaicompat drives chat completions against any provider
that speaks the OpenAI chat-completions wire format: request
construction, provider-quirk resolution (compat), SSE streaming, and
the content-block state machine that turns a chunk stream into
[types.AssistantMessageEvent] values.

MiniMax's inline <think> tag handling lives in llmcore/provider/minimax,
which carries its own copy of the request, SSE and block-machine code
rather than importing this package.
*/
package openaicompat
