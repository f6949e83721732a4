// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package dispatch ties the event pipeline, provider engines, and
transformer together behind a single Provider interface, and supplies
two opt-in decorators: WithRetry, which retries only the connection
phase of a stream with exponential backoff (mid-stream errors are not
retried, since a partial event sequence has already reached the
caller by then), and WithRewriters, which runs a RewriterChain of
MessageRewriter over the conversation before every Stream call.
*/
package dispatch
