package rx

// Operator is one stage of a pipeline's operator chain. Callbacks and
// downstream stages accumulate until Subscribe activates the pipeline.
//
// An Operator is itself an Observable, so a chain can be handed to
// combinators in place of a publisher. Piping an operator continues the same
// chain instead of attaching a new pipeline.
type Operator[V any] struct {
	sub        *subscription
	onValue    []func(V, bool)
	onError    []func(error, bool)
	onComplete []func(bool)
}

func newOperator[V any](sub *subscription) *Operator[V] {
	return &Operator[V]{sub: sub}
}

// ID returns the identifier of the underlying subscription.
func (o *Operator[V]) ID() UID { return o.sub.id }

// IsComplete reports whether the pipeline received completion.
func (o *Operator[V]) IsComplete() bool { return o.sub.complete }

// Pipe returns o.
func (o *Operator[V]) Pipe() *Operator[V] { return o }

// PipeAny continues the chain with values converted to any.
func (o *Operator[V]) PipeAny() *Operator[any] {
	return Map(o, func(v V) any { return v })
}

// OnReceive registers fn for every value, live or replayed.
func (o *Operator[V]) OnReceive(fn func(V)) *Operator[V] {
	o.onValue = append(o.onValue, func(v V, _ bool) { fn(v) })
	return o
}

// OnError registers fn for every error, live or replayed.
func (o *Operator[V]) OnError(fn func(error)) *Operator[V] {
	o.onError = append(o.onError, func(err error, _ bool) { fn(err) })
	return o
}

// OnComplete registers fn for completion.
func (o *Operator[V]) OnComplete(fn func()) *Operator[V] {
	o.onComplete = append(o.onComplete, func(bool) { fn() })
	return o
}

// Subscribe activates delivery. The source brings the new subscriber up to
// date according to its replay policy before Subscribe returns. Calling
// Subscribe again on the same chain returns the same subscription.
func (o *Operator[V]) Subscribe() Subscription {
	o.sub.subscribe()
	return o.sub
}

// Filter passes on the values for which keep returns true.
func (o *Operator[V]) Filter(keep func(V) bool) *Operator[V] {
	next := newOperator[V](o.sub)
	link(o, next, func(v V, live bool) {
		if keep(v) {
			next.send(v, live)
		}
	})
	return next
}

// Skip drops the first n values.
func (o *Operator[V]) Skip(n int) *Operator[V] {
	next := newOperator[V](o.sub)
	seen := 0
	link(o, next, func(v V, live bool) {
		if seen < n {
			seen++
			return
		}
		next.send(v, live)
	})
	return next
}

// RemoveDuplicatesFunc drops a value when equal reports it equal to the
// previous value passed on.
func (o *Operator[V]) RemoveDuplicatesFunc(equal func(a, b V) bool) *Operator[V] {
	next := newOperator[V](o.sub)
	var last V
	hasLast := false
	link(o, next, func(v V, live bool) {
		if hasLast && equal(last, v) {
			return
		}
		last, hasLast = v, true
		next.send(v, live)
	})
	return next
}

func (o *Operator[V]) send(v V, live bool) {
	for _, fn := range o.onValue {
		if o.sub.closed() {
			return
		}
		fn(v, live)
	}
}

func (o *Operator[V]) sendError(err error, live bool) {
	for _, fn := range o.onError {
		if o.sub.closed() {
			return
		}
		fn(err, live)
	}
}

func (o *Operator[V]) sendComplete(live bool) {
	for _, fn := range o.onComplete {
		if o.sub.disposed {
			return
		}
		fn(live)
	}
}

// link wires value delivery through onValue and forwards errors and
// completion unchanged.
func link[V, R any](from *Operator[V], to *Operator[R], onValue func(V, bool)) {
	from.onValue = append(from.onValue, onValue)
	from.onError = append(from.onError, to.sendError)
	from.onComplete = append(from.onComplete, to.sendComplete)
}

// Map transforms every value with fn.
func Map[V, R any](o *Operator[V], fn func(V) R) *Operator[R] {
	next := newOperator[R](o.sub)
	link(o, next, func(v V, live bool) {
		next.send(fn(v), live)
	})
	return next
}

// FlatMap subscribes to the observable fn returns for each value and passes
// on its values and errors. A new value releases the previous inner
// subscription. Inner completion is not forwarded; the chain completes with
// its source. A nil observable from fn only releases the previous one.
func FlatMap[V, R any](o *Operator[V], fn func(V) Observable[R]) *Operator[R] {
	next := newOperator[R](o.sub)
	var inner Subscription
	release := func() {
		if inner != nil {
			s := inner
			inner = nil
			s.Unsubscribe()
		}
	}
	o.sub.onRelease(release)
	link(o, next, func(v V, _ bool) {
		release()
		src := fn(v)
		if src == nil {
			return
		}
		head := src.Pipe()
		head.onValue = append(head.onValue, next.send)
		head.onError = append(head.onError, next.sendError)
		s := head.Subscribe()
		if o.sub.closed() {
			s.Unsubscribe()
			return
		}
		inner = s
	})
	return next
}

// RemoveDuplicates drops a value equal to the previous value passed on.
func RemoveDuplicates[V comparable](o *Operator[V]) *Operator[V] {
	return o.RemoveDuplicatesFunc(func(a, b V) bool { return a == b })
}

// SkipNil drops nil pointers.
func SkipNil[V any](o *Operator[*V]) *Operator[*V] {
	return o.Filter(func(v *V) bool { return v != nil })
}
