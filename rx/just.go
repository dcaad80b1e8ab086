package rx

// Just is a publisher whose whole life happens at construction: at most one
// value or error, then completion.
type Just[V any] struct {
	*Publisher[V]
}

// JustComplete emits value and completes.
func JustComplete[V any](value V, opts ...Option) *Just[V] {
	p := newPublisher[V]("just_complete", ReplayCacheLast, opts)
	p.send(value)
	p.sendComplete()
	return &Just[V]{p}
}

// Empty completes without a value.
func Empty[V any](opts ...Option) *Just[V] {
	p := newPublisher[V]("empty", ReplayCacheLast, opts)
	p.sendComplete()
	return &Just[V]{p}
}

// JustError emits err and completes.
func JustError[V any](err error, opts ...Option) *Just[V] {
	p := newPublisher[V]("just_error", ReplayCacheLastError, opts)
	p.sendError(err)
	p.sendComplete()
	return &Just[V]{p}
}

// Value returns the emitted value, if any.
func (j *Just[V]) Value() (V, bool) { return j.latest() }

// Err returns the emitted error, if any.
func (j *Just[V]) Err() error { return j.err }
