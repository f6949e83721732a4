// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package overflow detects context-window overflow across the
OpenAI-compatible provider family, either from a provider's error
message or, for providers that truncate silently instead of erroring,
from usage accounting exceeding a known context window.
*/
package overflow
