// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package transform rewrites conversation history for a different
target model: thinking blocks are kept verbatim only when replaying
into the same model that produced them (otherwise converted to plain
text or dropped if empty), tool-call ids are normalized through a
caller-supplied function with the mapping applied to later tool
results, errored/aborted assistant turns are dropped, and orphaned
tool calls get a synthetic error result so every call still has a
matching result after the rewrite.
*/
package transform
