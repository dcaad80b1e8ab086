package rx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/flinker/logger"
)

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call if it has not started. It reports whether
	// the call was prevented.
	Stop() bool
}

// Scheduler runs a function after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) Timer

// AfterFunc calls f(d, fn).
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) Timer { return f(d, fn) }

// DefaultLoopQueueSize is the task queue size of a Loop created with a
// non-positive size.
const DefaultLoopQueueSize = 256

// Loop serializes work onto the goroutine that runs it. Goroutines and timers
// post results to the loop, and the owner applies them to its publishers
// one at a time.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop with a task queue of queueSize.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultLoopQueueSize
	}
	return &Loop{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It blocks while the queue is full and returns false once
// the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc posts fn to the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() { l.Post(fn) })
}

// Run executes posted tasks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			l.exec(fn)
		}
	}
}

// Drain executes the tasks queued right now without blocking and returns
// how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			l.exec(fn)
			n++
		default:
			return n
		}
	}
}

// Stop ends Run. Tasks still queued are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

var defaultLoop = NewLoop(0)

// DefaultLoop returns the loop that publishers created without WithScheduler
// schedule their delayed calls on. Nothing runs until its owner calls Run or
// Drain, so delayed emissions always happen on the owner goroutine.
func DefaultLoop() *Loop { return defaultLoop }

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get("rx.loop").Error("task panicked", logger.Fields(logger.FieldError, fmt.Sprint(r)))
		}
	}()
	fn()
}
