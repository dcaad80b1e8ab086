package rx

// Emitter remembers its last value and its last error. A late subscriber
// receives the error if one was sent, otherwise the last value, then
// completion if reached. Errors do not complete an Emitter.
type Emitter[V any] struct {
	*Publisher[V]
}

// NewEmitter creates an Emitter with no value.
func NewEmitter[V any](opts ...Option) *Emitter[V] {
	return &Emitter[V]{newPublisher[V]("emitter", ReplayCacheLast, opts)}
}

// Send caches and broadcasts v. No-op once complete.
func (e *Emitter[V]) Send(v V) { e.send(v) }

// SendError latches and broadcasts err. No-op once complete.
func (e *Emitter[V]) SendError(err error) { e.sendError(err) }

// Complete completes the emitter. Further calls are no-ops.
func (e *Emitter[V]) Complete() { e.sendComplete() }

// Value returns the last value, if any.
func (e *Emitter[V]) Value() (V, bool) { return e.latest() }

// Err returns the latched error, if any.
func (e *Emitter[V]) Err() error { return e.err }
