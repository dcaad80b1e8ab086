package rx

// Operation is a single-shot future: it resolves exactly once, with a value
// or an error, and then completes. Subscribers attached before resolution
// wait; later ones get the recorded outcome. Retrying needs a new Operation.
type Operation[V any] struct {
	*Publisher[V]
}

// NewOperation creates an unresolved Operation.
func NewOperation[V any](opts ...Option) *Operation[V] {
	return &Operation[V]{newPublisher[V]("operation", ReplaySingleShot, opts)}
}

// Success resolves with v. No-op if already resolved.
func (o *Operation[V]) Success(v V) {
	if o.complete {
		return
	}
	o.send(v)
	o.sendComplete()
}

// Fail resolves with err. No-op if already resolved.
func (o *Operation[V]) Fail(err error) {
	if o.complete {
		return
	}
	o.sendError(err)
	o.sendComplete()
}

// Resolve calls Fail when err is non-nil and Success otherwise.
func (o *Operation[V]) Resolve(v V, err error) {
	if err != nil {
		o.Fail(err)
		return
	}
	o.Success(v)
}

// IsResolved reports whether Success or Fail was called.
func (o *Operation[V]) IsResolved() bool { return o.complete }

// Value returns the success value, if resolved successfully.
func (o *Operation[V]) Value() (V, bool) {
	if o.hasError {
		var zero V
		return zero, false
	}
	return o.latest()
}

// Err returns the failure, if resolved with one.
func (o *Operation[V]) Err() error { return o.err }
