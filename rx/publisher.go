package rx

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/kbukum/flinker/logger"
)

// Replay selects what a publisher delivers to a pipeline when it subscribes.
type Replay int

const (
	// ReplayNone delivers completion only, if reached.
	ReplayNone Replay = iota
	// ReplayCacheLast delivers the latched error, else the last value.
	ReplayCacheLast
	// ReplayCacheLastError delivers the latched error only.
	ReplayCacheLastError
	// ReplayAlwaysHasValue delivers the latched error, else the current
	// value, which always exists.
	ReplayAlwaysHasValue
	// ReplayFullHistory delivers every value and error in arrival order.
	ReplayFullHistory
	// ReplaySingleShot delivers nothing until resolved, then the one outcome.
	ReplaySingleShot
	// ReplayCountdownBarrier delivers the result value once the barrier and
	// its result observable have both completed without error.
	ReplayCountdownBarrier
)

// String returns the policy name in snake case.
func (r Replay) String() string {
	switch r {
	case ReplayNone:
		return "none"
	case ReplayCacheLast:
		return "cache_last"
	case ReplayCacheLastError:
		return "cache_last_error"
	case ReplayAlwaysHasValue:
		return "always_has_value"
	case ReplayFullHistory:
		return "full_history"
	case ReplaySingleShot:
		return "single_shot"
	case ReplayCountdownBarrier:
		return "countdown_barrier"
	default:
		return fmt.Sprintf("Replay(%d)", int(r))
	}
}

// Publisher multicasts values and errors to its pipelines. The variants in
// this package embed it and differ only in their Replay policy and in the
// methods they expose for producing events.
//
// Pipelines may subscribe and unsubscribe from inside callbacks of the same
// publisher. Unsubscribes during an emission are queued and applied once the
// outermost emission returns, so each emission reaches exactly the pipelines
// attached when it began. An emission started from inside a callback is
// delivered after the one in progress, so every pipeline observes events in
// emission order.
type Publisher[V any] struct {
	id     UID
	kind   string
	replay Replay
	opts   options

	pipelines []*pipeline[V]
	pending   []*pipeline[V]
	queued    []func()
	sending   int
	complete  bool

	value    V
	hasValue bool
	err      error
	hasError bool
	history  []Event[V]
	released bool

	upstream []Subscription
}

func newPublisher[V any](kind string, replay Replay, opts []Option) *Publisher[V] {
	p := &Publisher[V]{
		id:     NextUID(),
		kind:   kind,
		replay: replay,
		opts:   buildOptions(kind, opts),
	}
	p.opts.observer.Created(kind)
	p.debug("publisher created", nil)
	return p
}

// ID returns the publisher identifier.
func (p *Publisher[V]) ID() UID { return p.id }

// Kind returns the variant name, e.g. "subject".
func (p *Publisher[V]) Kind() string { return p.kind }

// Replay returns the replay policy.
func (p *Publisher[V]) Replay() Replay { return p.replay }

// IsComplete reports whether the publisher completed. It never resets.
func (p *Publisher[V]) IsComplete() bool { return p.complete }

// Volume returns the number of attached pipelines.
func (p *Publisher[V]) Volume() int { return len(p.pipelines) }

// AsObservable returns p as a read-only Observable.
func (p *Publisher[V]) AsObservable() Observable[V] { return p }

// Pipe attaches a new pipeline. A completed publisher does not hold on to
// the pipeline but still replays to it on Subscribe.
func (p *Publisher[V]) Pipe() *Operator[V] {
	pl := newPipeline(p.didSubscribe, p.didUnsubscribe)
	if !p.complete {
		p.pipelines = append(p.pipelines, pl)
	}
	return pl.head
}

// PipeAny attaches a new pipeline whose values are converted to any.
func (p *Publisher[V]) PipeAny() *Operator[any] {
	return p.Pipe().PipeAny()
}

func (p *Publisher[V]) didSubscribe(pl *pipeline[V]) {
	p.opts.observer.Subscribed(p.kind)

	switch p.replay {
	case ReplayNone:
	case ReplayCacheLast:
		if p.hasError {
			pl.sendError(p.err, false)
		} else if p.hasValue {
			pl.send(p.value, false)
		}
	case ReplayCacheLastError:
		if p.hasError {
			pl.sendError(p.err, false)
		}
	case ReplayAlwaysHasValue:
		if p.hasError {
			pl.sendError(p.err, false)
		} else {
			pl.send(p.value, false)
		}
	case ReplayFullHistory:
		for _, e := range p.history {
			if e.Kind == EventError {
				pl.sendError(e.Err, false)
			} else {
				pl.send(e.Value, false)
			}
		}
	case ReplaySingleShot:
		if !p.complete {
			return
		}
		if p.hasError {
			pl.sendError(p.err, false)
		} else {
			pl.send(p.value, false)
		}
	case ReplayCountdownBarrier:
		if p.hasError {
			pl.sendError(p.err, false)
		} else if p.complete && p.released && p.hasValue {
			pl.send(p.value, false)
		}
	}

	if p.complete {
		pl.sendComplete(false)
	}
}

func (p *Publisher[V]) didUnsubscribe(pl *pipeline[V]) {
	if p.sending > 0 {
		p.pending = append(p.pending, pl)
		return
	}
	if i := slices.Index(p.pipelines, pl); i >= 0 {
		p.pipelines = slices.Delete(p.pipelines, i, i+1)
		p.opts.observer.Unsubscribed(p.kind)
	}
}

func (p *Publisher[V]) send(v V) {
	if p.complete {
		return
	}
	switch p.replay {
	case ReplayNone, ReplayCacheLastError:
	case ReplayFullHistory:
		p.history = append(p.history, ValueEvent(v))
	default:
		p.value, p.hasValue = v, true
	}
	p.broadcast(EventValue, func(pl *pipeline[V]) { pl.send(v, true) })
}

// resend re-broadcasts the current value without latching it again.
func (p *Publisher[V]) resend() {
	if p.complete {
		return
	}
	v := p.value
	p.broadcast(EventValue, func(pl *pipeline[V]) { pl.send(v, true) })
}

func (p *Publisher[V]) sendError(err error) {
	if p.complete {
		return
	}
	switch p.replay {
	case ReplayNone:
	case ReplayFullHistory:
		p.history = append(p.history, ErrorEvent[V](err))
	default:
		p.err, p.hasError = err, true
	}
	p.debug("publisher error", err)
	p.broadcast(EventError, func(pl *pipeline[V]) { pl.sendError(err, true) })
}

func (p *Publisher[V]) sendComplete() {
	if p.complete {
		return
	}
	p.complete = true
	targets := p.pipelines
	p.pipelines = nil
	upstream := p.upstream
	p.upstream = nil

	p.dispatch(func() {
		for _, pl := range targets {
			pl.sendComplete(true)
		}
		p.opts.observer.Emitted(p.kind, EventComplete, len(targets))
		p.debug("publisher complete", nil)
	})

	for _, s := range upstream {
		s.Unsubscribe()
	}
}

// broadcast delivers to the pipelines attached now.
func (p *Publisher[V]) broadcast(kind EventKind, deliver func(*pipeline[V])) {
	targets := p.pipelines[:len(p.pipelines):len(p.pipelines)]
	p.dispatch(func() {
		for _, pl := range targets {
			deliver(pl)
		}
		p.opts.observer.Emitted(p.kind, kind, len(targets))
	})
}

// dispatch runs emit, or queues it behind the emission in progress when
// called from one of its callbacks.
func (p *Publisher[V]) dispatch(emit func()) {
	if p.sending > 0 {
		p.queued = append(p.queued, emit)
		return
	}
	p.sending++
	defer func() {
		p.sending--
		p.queued = nil
		p.flushPending()
	}()
	emit()
	for len(p.queued) > 0 {
		next := p.queued[0]
		p.queued = p.queued[1:]
		next()
	}
}

func (p *Publisher[V]) flushPending() {
	if p.sending > 0 || len(p.pending) == 0 {
		return
	}
	pending := p.pending
	p.pending = nil
	for _, pl := range pending {
		p.didUnsubscribe(pl)
	}
}

// own ties an upstream subscription to the publisher's lifetime.
func (p *Publisher[V]) own(s Subscription) {
	if p.complete {
		s.Unsubscribe()
		return
	}
	p.upstream = append(p.upstream, s)
}

func (p *Publisher[V]) latest() (V, bool) {
	return p.value, p.hasValue
}

func (p *Publisher[V]) debug(msg string, err error) {
	if !p.opts.log.Enabled(zerolog.DebugLevel) {
		return
	}
	fields := p.fields()
	if err != nil {
		fields = logger.MergeWithError(fields, err)
	}
	p.opts.log.Debug(msg, fields)
}

func (p *Publisher[V]) fields() map[string]interface{} {
	return logger.Fields(
		logger.FieldKind, p.kind,
		logger.FieldPublisher, p.opts.name,
		logger.FieldID, uint64(p.id),
	)
}
