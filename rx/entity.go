package rx

// Entity makes a stateful object observable. The emitted value is always
// the object itself, so a late observer always sees current state.
//
// Embed it and create it with the object as self:
//
//	type Editor struct {
//	    *rx.Entity[*Editor]
//	    title string
//	}
//
//	func NewEditor() *Editor {
//	    e := &Editor{}
//	    e.Entity = rx.NewEntity(e)
//	    return e
//	}
//
//	func (e *Editor) SetTitle(t string) {
//	    e.title = t
//	    e.Mutated()
//	}
type Entity[T any] struct {
	*Publisher[T]
}

// NewEntity creates an Entity emitting self.
func NewEntity[T any](self T, opts ...Option) *Entity[T] {
	p := newPublisher[T]("entity", ReplayAlwaysHasValue, opts)
	p.value, p.hasValue = self, true
	return &Entity[T]{p}
}

// Mutated notifies observers that the entity changed. Call it from every
// state-changing method.
func (e *Entity[T]) Mutated() { e.send(e.value) }

// Dispose completes the entity so observers can detach. Call it when the
// object leaves its graph.
func (e *Entity[T]) Dispose() { e.sendComplete() }
