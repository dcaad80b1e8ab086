package rx

// Value is a settable cell that emits only when the value changes.
type Value[V comparable] struct {
	*Publisher[V]
}

// NewValue creates a cell holding v.
func NewValue[V comparable](v V, opts ...Option) *Value[V] {
	p := newPublisher[V]("value", ReplayAlwaysHasValue, opts)
	p.value, p.hasValue = v, true
	return &Value[V]{p}
}

// Get returns the current value.
func (c *Value[V]) Get() V { return c.value }

// Set stores v and emits it unless it equals the current value. Interface
// values holding uncomparable types, such as slices, count as changed.
// Ignored after Dispose.
func (c *Value[V]) Set(v V) {
	if same(v, c.value) {
		return
	}
	c.send(v)
}

// same is a == b without the runtime panic on uncomparable dynamic types.
func same[V comparable](a, b V) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// Dispose completes the cell.
func (c *Value[V]) Dispose() { c.sendComplete() }
