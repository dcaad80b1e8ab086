package rx

// Barrier waits for its sources to complete, then relays the outcome of an
// optional result observable.
type Barrier[V any] struct {
	*Publisher[V]
	result Observable[V]
}

// WaitFor is WaitUntilComplete with a single source.
func WaitFor[V any](source AnyObservable, result Observable[V], opts ...Option) *Barrier[V] {
	return WaitUntilComplete([]AnyObservable{source}, result, opts...)
}

// WaitUntilComplete completes after every source completed. If result is
// not nil it is subscribed at that point and its values, errors and
// completion become the barrier's own. The first source error is passed on
// at once and completes the barrier without waiting for the rest.
func WaitUntilComplete[V any](sources []AnyObservable, result Observable[V], opts ...Option) *Barrier[V] {
	b := &Barrier[V]{
		Publisher: newPublisher[V]("wait_until_complete", ReplayCountdownBarrier, opts),
		result:    result,
	}
	remaining := len(sources)
	for _, src := range sources {
		sub := src.PipeAny().
			OnError(b.abort).
			OnComplete(func() {
				remaining--
				if remaining == 0 {
					b.proceed()
				}
			}).
			Subscribe()
		b.own(sub)
	}
	if len(sources) == 0 {
		b.proceed()
	}
	return b
}

func (b *Barrier[V]) abort(err error) {
	if b.complete {
		return
	}
	b.sendError(err)
	b.sendComplete()
}

func (b *Barrier[V]) proceed() {
	if b.complete {
		return
	}
	if b.result == nil {
		b.sendComplete()
		return
	}
	sub := b.result.Pipe().
		OnReceive(b.send).
		OnError(b.sendError).
		OnComplete(func() {
			b.released = true
			b.sendComplete()
		}).
		Subscribe()
	b.own(sub)
}

// Value returns the last value relayed from the result observable.
func (b *Barrier[V]) Value() (V, bool) { return b.latest() }

// Err returns the latched error, if any.
func (b *Barrier[V]) Err() error { return b.err }
