package eventstream

import (
	"context"
	"errors"
	"sync"

	"github.com/BaSui01/agentflow/llmcore/types"
)

// ErrResultAlreadyTaken is returned by Stream.Result if called more
// than once on the same Stream.
var ErrResultAlreadyTaken = errors.New("eventstream: result already taken")

// ErrStreamAborted is returned by Stream.Result when the sender was
// dropped without ever pushing a terminal event.
var ErrStreamAborted = errors.New("eventstream: stream ended without a terminal event")

// Stream is the consumer side of an event pipeline: an ordered
// channel of events plus a deferred final AssistantMessage.
type Stream struct {
	events chan types.AssistantMessageEvent
	result chan types.AssistantMessage
	taken  atomicBool
}

// Sender is the producer side of an event pipeline. Provider
// implementations hold one per in-flight request and drive it from a
// single goroutine.
type Sender struct {
	events chan types.AssistantMessageEvent
	result chan types.AssistantMessage
	once   sync.Once
}

// New creates a paired Stream and Sender. The channel is buffered
// generously since a provider goroutine pushes far faster than a
// caller typically drains; callers that need backpressure should
// drain Events promptly.
func New() (*Stream, *Sender) {
	events := make(chan types.AssistantMessageEvent, 64)
	result := make(chan types.AssistantMessage, 1)
	return &Stream{events: events, result: result}, &Sender{events: events, result: result}
}

// Events returns the channel of events. It is closed once the
// producer goroutine returns, whether or not a terminal event was
// ever pushed.
func (s *Stream) Events() <-chan types.AssistantMessageEvent {
	return s.events
}

// Result blocks until the terminal AssistantMessage is available or
// ctx is done. It may be called exactly once; a second call returns
// ErrResultAlreadyTaken.
func (s *Stream) Result(ctx context.Context) (types.AssistantMessage, error) {
	if s.taken.swap(true) {
		return types.AssistantMessage{}, ErrResultAlreadyTaken
	}
	select {
	case <-ctx.Done():
		return types.AssistantMessage{}, ctx.Err()
	case msg, ok := <-s.result:
		if !ok {
			return types.AssistantMessage{}, ErrStreamAborted
		}
		return msg, nil
	}
}

// Push delivers an event to the stream. If the event is Done or
// Error, the first such push also resolves Result with the event's
// terminal message. Push must only be called from the goroutine that
// owns this Sender.
func (s *Sender) Push(event types.AssistantMessageEvent) {
	switch event.Kind {
	case types.EventDone:
		s.resolve(event.Message)
	case types.EventError:
		s.resolve(event.Message)
	}
	s.events <- event
}

func (s *Sender) resolve(msg types.AssistantMessage) {
	s.once.Do(func() {
		s.result <- msg
	})
}

// Close finalizes the stream. It must be called exactly once, after
// the last Push, typically via defer in the provider goroutine. If no
// terminal event was ever pushed, pending Result callers observe
// ErrStreamAborted.
func (s *Sender) Close() {
	close(s.events)
	close(s.result)
}

type atomicBool struct {
	mu sync.Mutex
	v  bool
}

func (b *atomicBool) swap(v bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	old := b.v
	b.v = v
	return old
}
