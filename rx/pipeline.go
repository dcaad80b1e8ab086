package rx

// subscription is the state shared by every operator of one pipeline.
type subscription struct {
	id       UID
	active   bool
	complete bool
	disposed bool
	attach   func()
	detach   func()
	cleanups []func()
}

func (s *subscription) ID() UID { return s.id }

func (s *subscription) IsComplete() bool { return s.complete }

func (s *subscription) closed() bool { return s.complete || s.disposed }

func (s *subscription) Unsubscribe() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.detach != nil {
		s.detach()
	}
	s.release()
}

func (s *subscription) subscribe() {
	if s.active || s.disposed {
		return
	}
	s.active = true
	if s.attach != nil {
		s.attach()
	}
}

// onRelease registers fn to run once the pipeline completes or is
// unsubscribed. Runs fn immediately if that already happened.
func (s *subscription) onRelease(fn func()) {
	if s.closed() {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

func (s *subscription) release() {
	cleanups := s.cleanups
	s.cleanups = nil
	for _, fn := range cleanups {
		fn()
	}
}

// pipeline is what a publisher holds for one subscriber: the shared
// subscription state and the head of its operator chain.
type pipeline[V any] struct {
	sub  *subscription
	head *Operator[V]
}

func newPipeline[V any](attach func(*pipeline[V]), detach func(*pipeline[V])) *pipeline[V] {
	sub := &subscription{id: NextUID()}
	p := &pipeline[V]{sub: sub, head: newOperator[V](sub)}
	sub.attach = func() { attach(p) }
	sub.detach = func() { detach(p) }
	return p
}

func (p *pipeline[V]) IsComplete() bool { return p.sub.complete }

func (p *pipeline[V]) deliverable() bool {
	return p.sub.active && !p.sub.closed()
}

func (p *pipeline[V]) send(v V, live bool) {
	if !p.deliverable() {
		return
	}
	p.head.send(v, live)
}

func (p *pipeline[V]) sendError(err error, live bool) {
	if !p.deliverable() {
		return
	}
	p.head.sendError(err, live)
}

func (p *pipeline[V]) sendComplete(live bool) {
	if !p.deliverable() {
		return
	}
	p.sub.complete = true
	p.head.sendComplete(live)
	p.sub.release()
}
