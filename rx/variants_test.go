package rx

import (
	"context"
	"testing"
	"time"
)

func TestJustComplete_LateSubscriber(t *testing.T) {
	j := JustComplete(5)
	time.Sleep(10 * time.Millisecond)

	r, sub := record[int](j)
	assertEvents(t, r, ValueEvent(5), CompleteEvent[int]())
	if !sub.IsComplete() || !j.IsComplete() {
		t.Error("expected completed subscription and publisher")
	}
	if v, ok := j.Value(); !ok || v != 5 {
		t.Errorf("Value() = %v, %v", v, ok)
	}
}

func TestEmptyAndJustError(t *testing.T) {
	r, _ := record[int](Empty[int]())
	assertEvents(t, r, CompleteEvent[int]())

	j := JustError[int](errE1)
	r, _ = record[int](j)
	assertEvents(t, r, ErrorEvent[int](errE1), CompleteEvent[int]())
	if j.Err() != errE1 {
		t.Errorf("Err() = %v", j.Err())
	}
	if _, ok := j.Value(); ok {
		t.Error("JustError should hold no value")
	}
}

func TestEmitter(t *testing.T) {
	e := NewEmitter[int]()
	early, _ := record[int](e)

	e.Send(1)
	e.Send(2)
	late, _ := record[int](e)
	e.SendError(errE1)
	afterErr, _ := record[int](e)
	e.Send(3)
	e.Complete()
	e.Send(4)

	assertEvents(t, early, ValueEvent(1), ValueEvent(2), ErrorEvent[int](errE1), ValueEvent(3), CompleteEvent[int]())
	assertEvents(t, late, ValueEvent(2), ErrorEvent[int](errE1), ValueEvent(3), CompleteEvent[int]())
	assertEvents(t, afterErr, ErrorEvent[int](errE1), ValueEvent(3), CompleteEvent[int]())

	if v, ok := e.Value(); !ok || v != 3 {
		t.Errorf("Value() = %v, %v", v, ok)
	}
	if e.Err() != errE1 {
		t.Errorf("Err() = %v", e.Err())
	}
}

func TestSubject(t *testing.T) {
	s := NewSubject("a")
	first, _ := record[string](s)
	s.Send("b")

	late, _ := record[string](s)
	assertEvents(t, late, ValueEvent("b"))
	assertEvents(t, first, ValueEvent("a"), ValueEvent("b"))

	s.Resend()
	assertEvents(t, late, ValueEvent("b"), ValueEvent("b"))
	if s.Value() != "b" {
		t.Errorf("Value() = %q", s.Value())
	}

	s.SendError(errE1)
	afterErr, _ := record[string](s)
	assertEvents(t, afterErr, ErrorEvent[string](errE1))

	s.Complete()
	if first.completions() != 1 || afterErr.completions() != 1 {
		t.Error("every subscriber should complete once")
	}
}

func TestBuffer_ReplaysHistoryInOrder(t *testing.T) {
	b := NewBuffer[int]()
	b.Send(1)
	b.Send(2)
	b.SendError(errE1)
	b.Send(3)
	b.Complete()

	want := []Event[int]{ValueEvent(1), ValueEvent(2), ErrorEvent[int](errE1), ValueEvent(3), CompleteEvent[int]()}
	for i := 0; i < 2; i++ {
		r, _ := record[int](b)
		assertEvents(t, r, want...)
	}
	if h := b.History(); len(h) != 4 {
		t.Errorf("History() has %d events, want 4", len(h))
	}
}

func TestOperation(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		op := NewOperation[int]()
		waiting, _ := record[int](op)
		assertEvents(t, waiting)

		op.Success(1)
		op.Success(2)
		op.Fail(errE1)

		late, _ := record[int](op)
		assertEvents(t, waiting, ValueEvent(1), CompleteEvent[int]())
		assertEvents(t, late, ValueEvent(1), CompleteEvent[int]())
		if v, ok := op.Value(); !ok || v != 1 || !op.IsResolved() {
			t.Errorf("Value() = %v, %v", v, ok)
		}
	})

	t.Run("failure", func(t *testing.T) {
		op := NewOperation[int]()
		op.Resolve(9, errE1)
		op.Success(1)

		late, _ := record[int](op)
		assertEvents(t, late, ErrorEvent[int](errE1), CompleteEvent[int]())
		if _, ok := op.Value(); ok {
			t.Error("failed operation should hold no value")
		}
		if op.Err() != errE1 {
			t.Errorf("Err() = %v", op.Err())
		}
	})

	t.Run("resolve without error", func(t *testing.T) {
		op := NewOperation[string]()
		op.Resolve("done", nil)
		late, _ := record[string](op)
		assertEvents(t, late, ValueEvent("done"), CompleteEvent[string]())
	})
}

func TestDelayed(t *testing.T) {
	tests := []struct {
		name  string
		build func(Scheduler) *Delayed[int]
		want  []Event[int]
	}{
		{"complete", func(s Scheduler) *Delayed[int] { return DelayedComplete(time.Second, 5, WithScheduler(s)) },
			[]Event[int]{ValueEvent(5), CompleteEvent[int]()}},
		{"empty", func(s Scheduler) *Delayed[int] { return DelayedEmpty[int](time.Second, WithScheduler(s)) },
			[]Event[int]{CompleteEvent[int]()}},
		{"error", func(s Scheduler) *Delayed[int] { return DelayedError[int](time.Second, errE1, WithScheduler(s)) },
			[]Event[int]{ErrorEvent[int](errE1), CompleteEvent[int]()}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sched := &manualScheduler{}
			d := tc.build(sched)
			if len(sched.timers) != 1 || sched.timers[0].delay != time.Second {
				t.Fatalf("expected one timer of 1s, got %d", len(sched.timers))
			}

			early, _ := record[int](d)
			assertEvents(t, early)

			sched.fire()
			late, _ := record[int](d)
			assertEvents(t, early, tc.want...)
			assertEvents(t, late, tc.want...)

			if d.Cancel() {
				t.Error("Cancel after firing should report false")
			}
		})
	}
}

func TestDelayed_Cancel(t *testing.T) {
	sched := &manualScheduler{}
	d := DelayedComplete(time.Second, 5, WithScheduler(sched))
	r, _ := record[int](d)

	if !d.Cancel() {
		t.Fatal("Cancel before firing should succeed")
	}
	if d.Cancel() {
		t.Error("second Cancel should report false")
	}
	if sched.fire() != 0 {
		t.Error("cancelled timer must not fire")
	}
	assertEvents(t, r, CompleteEvent[int]())
	if _, ok := d.Value(); ok {
		t.Error("cancelled delay should hold no value")
	}
}

func TestDelayed_OnLoop(t *testing.T) {
	loop := NewLoop(0)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	d := DelayedComplete(5*time.Millisecond, "tick", WithScheduler(loop))
	var got []string
	d.Pipe().
		OnReceive(func(v string) { got = append(got, v) }).
		OnComplete(loop.Stop).
		Subscribe()

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("loop ended with %v", err)
	}
	if len(got) != 1 || got[0] != "tick" {
		t.Errorf("expected [tick], got %v", got)
	}
}

func TestDelayed_DefaultLoopKeepsOwnerGoroutine(t *testing.T) {
	d := DelayedComplete(time.Millisecond, 5)

	deadline := time.Now().Add(20 * time.Millisecond)
	for time.Now().Before(deadline) {
		s := d.Pipe().Subscribe()
		s.Unsubscribe()
	}
	if d.IsComplete() {
		t.Fatal("delayed emission ran before its loop was drained")
	}

	var got []int
	d.Pipe().OnReceive(func(v int) { got = append(got, v) }).Subscribe()
	until := time.Now().Add(2 * time.Second)
	for !d.IsComplete() && time.Now().Before(until) {
		DefaultLoop().Drain()
		time.Sleep(time.Millisecond)
	}
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("expected [5] after draining the default loop, got %v", got)
	}
}

func TestFrom(t *testing.T) {
	f := From([]int{1, 2, 3})
	for i := 0; i < 2; i++ {
		r, _ := record[int](f)
		assertEvents(t, r, ValueEvent(1), ValueEvent(2), ValueEvent(3), CompleteEvent[int]())
	}
	if v := f.Values(); len(v) != 3 || v[2] != 3 {
		t.Errorf("Values() = %v", v)
	}

	r, _ := record[int](From[int](nil))
	assertEvents(t, r, CompleteEvent[int]())
}

type document struct {
	*Entity[*document]
	title string
}

func newDocument() *document {
	d := &document{}
	d.Entity = NewEntity(d)
	return d
}

func (d *document) SetTitle(title string) {
	d.title = title
	d.Mutated()
}

func TestEntity(t *testing.T) {
	doc := newDocument()
	var titles []string
	doc.Pipe().OnReceive(func(d *document) { titles = append(titles, d.title) }).Subscribe()

	doc.SetTitle("draft")
	doc.SetTitle("final")

	var late []string
	doc.Pipe().OnReceive(func(d *document) { late = append(late, d.title) }).Subscribe()

	if len(titles) != 3 || titles[0] != "" || titles[2] != "final" {
		t.Errorf("expected ['' draft final], got %q", titles)
	}
	if len(late) != 1 || late[0] != "final" {
		t.Errorf("late observer should see current state, got %q", late)
	}

	doc.Dispose()
	doc.SetTitle("ignored")
	if len(titles) != 3 || !doc.IsComplete() {
		t.Errorf("disposed entity must not emit, got %q", titles)
	}
}

func TestValue_UncomparableCountsAsChanged(t *testing.T) {
	v := NewValue[any]([]int{1})
	var n int
	v.Pipe().OnReceive(func(any) { n++ }).Subscribe()

	v.Set([]int{1})
	v.Set("x")
	v.Set("x")
	if n != 3 {
		t.Errorf("expected replay plus two changes, got %d deliveries", n)
	}
}

func TestValue_EmitsOnChangeOnly(t *testing.T) {
	v := NewValue(1)
	r, _ := record[int](v)

	v.Set(2)
	v.Set(2)
	v.Set(1)
	assertEvents(t, r, ValueEvent(1), ValueEvent(2), ValueEvent(1))

	v.Dispose()
	v.Set(5)
	if v.Get() != 1 {
		t.Errorf("Set after Dispose should be ignored, Get() = %d", v.Get())
	}
	if r.completions() != 1 || len(r.events) != 4 {
		t.Errorf("unexpected events after dispose: %v", r.events)
	}
}
