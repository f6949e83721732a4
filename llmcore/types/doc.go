/*
Package types defines the canonical message, content-block, event, and
usage shapes shared by every provider and by the transformer.

# Messages

A [Message] is one of [UserMessage], [AssistantMessage], or
[ToolResultMessage]. All three implement the unexported marker method
so the set is closed outside this package.

# Content blocks

An assistant message carries an ordered sequence of [Content] blocks:
[TextContent], [ThinkingContent], [ImageContent], [ToolCallContent].
Each reports its own wire discriminator through Type().

# Events

[AssistantMessageEvent] is the single struct used for every event kind
in the streaming pipeline; [EventKind] distinguishes Start, the
per-block Start/Delta/End triples, and the terminal Done/Error kinds.
*/
package types
