package rx

import (
	"reflect"
	"testing"
	"time"
)

// recorder collects every delivery of one pipeline.
type recorder[V any] struct {
	events []Event[V]
}

func (r *recorder[V]) values() []V {
	var out []V
	for _, e := range r.events {
		if e.Kind == EventValue {
			out = append(out, e.Value)
		}
	}
	return out
}

func (r *recorder[V]) completions() int {
	n := 0
	for _, e := range r.events {
		if e.Kind == EventComplete {
			n++
		}
	}
	return n
}

func record[V any](o Observable[V]) (*recorder[V], Subscription) {
	r := &recorder[V]{}
	sub := o.Pipe().
		OnReceive(func(v V) { r.events = append(r.events, ValueEvent(v)) }).
		OnError(func(err error) { r.events = append(r.events, ErrorEvent[V](err)) }).
		OnComplete(func() { r.events = append(r.events, CompleteEvent[V]()) }).
		Subscribe()
	return r, sub
}

func assertEvents[V any](t *testing.T, got *recorder[V], want ...Event[V]) {
	t.Helper()
	if len(want) == 0 && len(got.events) == 0 {
		return
	}
	if !reflect.DeepEqual(got.events, want) {
		t.Errorf("events:\n got  %v\n want %v", got.events, want)
	}
}

// manualScheduler holds delayed calls until the test fires them.
type manualScheduler struct {
	timers []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &manualTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every pending timer in scheduling order.
func (s *manualScheduler) fire() int {
	n := 0
	for _, t := range s.timers {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.fn()
		n++
	}
	return n
}
