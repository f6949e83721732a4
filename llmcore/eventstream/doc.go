// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package eventstream wraps a single provider call's event pipeline: a
channel of [types.AssistantMessageEvent] plus a one-shot terminal
result, mirroring a single-producer/single-consumer channel pair.

A provider implementation calls [New] to obtain a [Stream] to return
to its caller and a [Sender] to drive from its own goroutine. Every
event pushed through the Sender is also visible on the Stream's
channel; the first terminal event (Done or Error) additionally
resolves the value returned by [Stream.Result].
*/
package eventstream
