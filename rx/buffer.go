package rx

import "slices"

// Buffer records every value and error and replays the full history, in
// arrival order, to each subscriber.
type Buffer[V any] struct {
	*Publisher[V]
}

// NewBuffer creates an empty Buffer.
func NewBuffer[V any](opts ...Option) *Buffer[V] {
	return &Buffer[V]{newPublisher[V]("buffer", ReplayFullHistory, opts)}
}

// Send records and broadcasts v.
func (b *Buffer[V]) Send(v V) { b.send(v) }

// SendError records and broadcasts err.
func (b *Buffer[V]) SendError(err error) { b.sendError(err) }

// Complete completes the buffer. The history is kept for replay.
func (b *Buffer[V]) Complete() { b.sendComplete() }

// History returns a copy of the recorded events.
func (b *Buffer[V]) History() []Event[V] { return slices.Clone(b.history) }
