package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/flinker/errors"
	"github.com/kbukum/flinker/logger"
	"github.com/kbukum/flinker/observability"
	"github.com/kbukum/flinker/resilience"
	"github.com/kbukum/flinker/rx"
)

// Func is the blocking body of a command. It runs on its own goroutine and
// must honor ctx.
type Func[V any] func(ctx context.Context) (V, error)

// Command is one run of a Func whose outcome lands on an rx.Operation.
type Command[V any] struct {
	runner    *Runner
	name      string
	fn        Func[V]
	requestID string
	op        *rx.Operation[V]
	cancel    context.CancelFunc
	started   bool
}

// New prepares a command. Nothing runs until Run.
func New[V any](r *Runner, name string, fn Func[V], opts ...rx.Option) *Command[V] {
	return &Command[V]{
		runner:    r,
		name:      name,
		fn:        fn,
		requestID: uuid.NewString(),
		op:        rx.NewOperation[V](append([]rx.Option{rx.WithName(name)}, opts...)...),
	}
}

// RequestID identifies the run in logs and spans.
func (c *Command[V]) RequestID() string { return c.requestID }

// Operation returns the operation the run resolves.
func (c *Command[V]) Operation() *rx.Operation[V] { return c.op }

// Run starts the command once and returns its outcome. Later calls return
// the same observable.
func (c *Command[V]) Run(ctx context.Context) rx.Observable[V] {
	if c.started {
		return c.op
	}
	c.started = true

	r := c.runner
	if r.cfg.Timeout > 0 {
		ctx, c.cancel = context.WithTimeout(ctx, r.cfg.Timeout)
	} else {
		ctx, c.cancel = context.WithCancel(ctx)
	}

	oc := observability.NewOperationContext(r.service, c.name, c.requestID, r.metrics)
	ctx, span := oc.Start(ctx)
	r.log.Debug("command started", c.fields())

	go func() {
		defer c.cancel()
		v, err := c.execute(ctx)
		err = normalize(ctx, c.name, err)

		status := observability.StatusOK
		switch {
		case errors.CodeOf(err) == errors.ErrCodeCancelled:
			status = observability.StatusCancelled
		case err != nil:
			status = observability.StatusError
		}
		oc.End(ctx, span, status, string(errors.CodeOf(err)), err)
		c.logFinish(status, oc.Duration(), err)

		if !r.loop.Post(func() { c.op.Resolve(v, err) }) {
			r.log.Warn("command outcome dropped, loop stopped", c.fields())
		}
	}()
	return c.op
}

// Cancel fails the operation with CANCELLED and cancels the running body.
// It reports false when the operation was already resolved.
func (c *Command[V]) Cancel() bool {
	if c.op.IsResolved() {
		return false
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.op.Fail(errors.Cancelled(c.name))
	return true
}

func (c *Command[V]) execute(ctx context.Context) (V, error) {
	r := c.runner
	return resilience.Retry(ctx, r.cfg.Retry, c.name, func(ctx context.Context) (V, error) {
		var out V
		err := r.breaker.Execute(func() error {
			return r.bulkhead.Execute(ctx, func() (err error) {
				defer func() {
					if p := recover(); p != nil {
						err = errors.Internal(fmt.Errorf("command %s panicked: %v", c.name, p))
					}
				}()
				out, err = c.fn(ctx)
				return err
			})
		})
		return out, err
	})
}

// normalize reports a run cut short by its context as TIMEOUT or CANCELLED.
func normalize(ctx context.Context, name string, err error) error {
	if err == nil {
		return nil
	}
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return errors.Timeout(name).WithCause(err)
	case context.Canceled:
		if errors.CodeOf(err) != errors.ErrCodeCancelled {
			return errors.Cancelled(name).WithCause(err)
		}
	}
	return err
}

func (c *Command[V]) fields() map[string]interface{} {
	return logger.Fields(
		logger.FieldOperation, c.name,
		logger.FieldRequestID, c.requestID,
	)
}

func (c *Command[V]) logFinish(status string, d time.Duration, err error) {
	fields := logger.MergeWithDuration(c.fields(), d)
	fields[logger.FieldStatus] = status
	if err == nil {
		c.runner.log.Info("command finished", fields)
		return
	}
	c.runner.log.Warn("command failed", logger.MergeWithError(fields, err))
}
