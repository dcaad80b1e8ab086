package rx

// AnyObservable is the type-erased view of an observable. Combinators that
// accept sources of different value types work on this view.
type AnyObservable interface {
	ID() UID
	IsComplete() bool
	PipeAny() *Operator[any]
}

// Observable is a multicast source of V values.
type Observable[V any] interface {
	AnyObservable
	// Pipe attaches a new pipeline and returns the head of its operator chain.
	// Delivery starts when the chain is subscribed.
	Pipe() *Operator[V]
}

// Subscription is the handle of one active pipeline.
type Subscription interface {
	ID() UID
	IsComplete() bool
	// Unsubscribe detaches the pipeline. It is safe to call from inside a
	// callback of the same publisher, and more than once.
	Unsubscribe()
}
