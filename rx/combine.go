package rx

import "slices"

// Combined emits the latest value of every source, by position, whenever
// any source emits. Slots of sources that have not emitted yet are nil.
type Combined struct {
	*Publisher[[]any]
	values []any
}

// Combine subscribes to sources right away. A subscriber receives the
// latched error, else the current snapshot, which starts as all nil. Source
// errors are passed on and latched; the result completes once every source
// has completed. With no sources it completes immediately without emitting.
func Combine(sources []AnyObservable, opts ...Option) *Combined {
	c := &Combined{
		Publisher: newPublisher[[]any]("combine", ReplayCacheLast, opts),
		values:    make([]any, len(sources)),
	}
	if len(sources) > 0 {
		c.value, c.hasValue = slices.Clone(c.values), true
	}
	remaining := len(sources)
	for i, src := range sources {
		sub := src.PipeAny().
			OnReceive(func(v any) {
				c.values[i] = v
				c.send(slices.Clone(c.values))
			}).
			OnError(func(err error) { c.sendError(err) }).
			OnComplete(func() {
				remaining--
				if remaining == 0 {
					c.sendComplete()
				}
			}).
			Subscribe()
		c.own(sub)
	}
	if len(sources) == 0 {
		c.sendComplete()
	}
	return c
}

// Values returns a copy of the current snapshot.
func (c *Combined) Values() []any { return slices.Clone(c.values) }

// Err returns the latched error, if any.
func (c *Combined) Err() error { return c.err }
