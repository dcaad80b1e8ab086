package rx

import "time"

// Delayed emits at most one value or error after a delay, then completes.
// Subscribers attached before the delay elapses receive the emission live;
// later ones get it replayed.
type Delayed[V any] struct {
	*Publisher[V]
	timer Timer
	fired bool
}

// DelayedComplete emits value after d and completes.
func DelayedComplete[V any](d time.Duration, value V, opts ...Option) *Delayed[V] {
	return newDelayed(d, "delayed_complete", ReplayCacheLast, opts, func(p *Publisher[V]) {
		p.send(value)
	})
}

// DelayedEmpty completes after d without a value.
func DelayedEmpty[V any](d time.Duration, opts ...Option) *Delayed[V] {
	return newDelayed(d, "delayed_empty", ReplayCacheLast, opts, func(*Publisher[V]) {})
}

// DelayedError emits err after d and completes.
func DelayedError[V any](d time.Duration, err error, opts ...Option) *Delayed[V] {
	return newDelayed(d, "delayed_error", ReplayCacheLastError, opts, func(p *Publisher[V]) {
		p.sendError(err)
	})
}

func newDelayed[V any](d time.Duration, kind string, replay Replay, opts []Option, emit func(*Publisher[V])) *Delayed[V] {
	dp := &Delayed[V]{Publisher: newPublisher[V](kind, replay, opts)}
	dp.timer = dp.opts.scheduler.AfterFunc(d, func() {
		if dp.complete {
			return
		}
		dp.fired = true
		emit(dp.Publisher)
		dp.sendComplete()
	})
	return dp
}

// Cancel stops the pending emission and completes without emitting. It
// returns false when the emission already happened or is already queued on
// the scheduler.
func (d *Delayed[V]) Cancel() bool {
	if d.fired || d.complete {
		return false
	}
	if !d.timer.Stop() {
		return false
	}
	d.sendComplete()
	return true
}

// Value returns the emitted value, if the delay elapsed.
func (d *Delayed[V]) Value() (V, bool) { return d.latest() }

// Err returns the emitted error, if the delay elapsed.
func (d *Delayed[V]) Err() error { return d.err }
