package rx

// Sequence is a fixed list published as an already completed observable.
type Sequence[V any] struct {
	*Publisher[V]
}

// From publishes values. Every subscriber receives the whole list in order,
// then completion, no matter when it attaches.
func From[V any](values []V, opts ...Option) *Sequence[V] {
	p := newPublisher[V]("from", ReplayFullHistory, opts)
	p.history = make([]Event[V], 0, len(values))
	for _, v := range values {
		p.history = append(p.history, ValueEvent(v))
	}
	p.sendComplete()
	return &Sequence[V]{p}
}

// Values returns a copy of the published list.
func (s *Sequence[V]) Values() []V {
	out := make([]V, 0, len(s.history))
	for _, e := range s.history {
		out = append(out, e.Value)
	}
	return out
}
