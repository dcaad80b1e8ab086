package rx

// Subject always holds a current value, seeded at construction. A late
// subscriber receives the latched error if any, else the current value.
type Subject[V any] struct {
	*Publisher[V]
}

// NewSubject creates a Subject holding value.
func NewSubject[V any](value V, opts ...Option) *Subject[V] {
	p := newPublisher[V]("subject", ReplayAlwaysHasValue, opts)
	p.value, p.hasValue = value, true
	return &Subject[V]{p}
}

// Value returns the current value.
func (s *Subject[V]) Value() V { return s.value }

// Err returns the latched error, if any.
func (s *Subject[V]) Err() error { return s.err }

// Send replaces the current value and broadcasts it.
func (s *Subject[V]) Send(v V) { s.send(v) }

// Resend broadcasts the current value again so dependents re-derive.
func (s *Subject[V]) Resend() { s.resend() }

// SendError latches and broadcasts err without completing.
func (s *Subject[V]) SendError(err error) { s.sendError(err) }

// Complete completes the subject.
func (s *Subject[V]) Complete() { s.sendComplete() }
