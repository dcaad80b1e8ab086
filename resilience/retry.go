package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/kbukum/flinker/errors"
	"github.com/kbukum/flinker/rx"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts counts the first attempt.
	MaxAttempts    int           `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=0"`
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff" validate:"gte=0"`
	MaxBackoff     time.Duration `yaml:"max_backoff" mapstructure:"max_backoff" validate:"gte=0"`
	BackoffFactor  float64       `yaml:"backoff_factor" mapstructure:"backoff_factor" validate:"gte=0"`
	// Jitter randomizes each backoff by up to this fraction either way.
	Jitter float64 `yaml:"jitter" mapstructure:"jitter" validate:"gte=0,lte=1"`

	// RetryIf decides whether a failure is retried. Defaults to
	// errors.IsRetryable.
	RetryIf func(error) bool `yaml:"-" mapstructure:"-"`
	// OnRetry runs before each backoff.
	OnRetry func(attempt int, err error, backoff time.Duration) `yaml:"-" mapstructure:"-"`
}

// DefaultRetryConfig returns three attempts starting at 100ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.1,
		RetryIf:        errors.IsRetryable,
	}
}

// ApplyDefaults fills zero fields from DefaultRetryConfig. Jitter stays as
// set.
func (c *RetryConfig) ApplyDefaults() {
	d := DefaultRetryConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = d.InitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = d.MaxBackoff
	}
	if c.BackoffFactor <= 0 {
		c.BackoffFactor = d.BackoffFactor
	}
	if c.RetryIf == nil {
		c.RetryIf = d.RetryIf
	}
}

// Retry calls fn until it succeeds, fails with an error RetryIf rejects, or
// runs out of attempts. Running out after more than one attempt yields a
// RETRIES_EXHAUSTED error wrapping the last failure; a done ctx yields
// CANCELLED.
func Retry[T any](ctx context.Context, cfg RetryConfig, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	cfg.ApplyDefaults()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, errors.Cancelled(operation).WithCause(err)
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !cfg.RetryIf(err) {
			return zero, err
		}
		if attempt >= cfg.MaxAttempts {
			return zero, exhausted(operation, attempt, err)
		}

		backoff := calculateBackoff(attempt, cfg)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, errors.Cancelled(operation).WithCause(ctx.Err())
		case <-timer.C:
		}
	}
}

// RetryFunc is Retry for functions without a result.
func RetryFunc(ctx context.Context, cfg RetryConfig, operation string, fn func(ctx context.Context) error) error {
	_, err := Retry(ctx, cfg, operation, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// RetryOperation resolves the returned Operation with the first successful
// attempt. attempt is called with the 1-based attempt number and must return
// a fresh Operation each time. Backoffs run on sched, nil meaning
// rx.DefaultLoop(). Resolving the returned Operation early stops further
// attempts.
func RetryOperation[V any](sched rx.Scheduler, cfg RetryConfig, operation string, attempt func(n int) *rx.Operation[V], opts ...rx.Option) *rx.Operation[V] {
	cfg.ApplyDefaults()
	if sched == nil {
		sched = rx.DefaultLoop()
	}

	out := rx.NewOperation[V](opts...)
	var pending rx.Timer
	out.Pipe().OnComplete(func() {
		if pending != nil {
			pending.Stop()
		}
	}).Subscribe()

	var run func(n int)
	run = func(n int) {
		pending = nil
		if out.IsResolved() {
			return
		}
		attempt(n).Pipe().
			OnReceive(out.Success).
			OnError(func(err error) {
				switch {
				case out.IsResolved():
				case !cfg.RetryIf(err):
					out.Fail(err)
				case n >= cfg.MaxAttempts:
					out.Fail(exhausted(operation, n, err))
				default:
					backoff := calculateBackoff(n, cfg)
					if cfg.OnRetry != nil {
						cfg.OnRetry(n, err, backoff)
					}
					pending = sched.AfterFunc(backoff, func() { run(n + 1) })
				}
			}).
			Subscribe()
	}
	run(1)
	return out
}

// exhausted wraps the last failure once retries happened. A single attempt
// reports its own error.
func exhausted(operation string, attempts int, err error) error {
	if attempts <= 1 {
		return err
	}
	return errors.Exhausted(operation, attempts, err)
}

// calculateBackoff returns initial * factor^(attempt-1) with jitter, capped
// at MaxBackoff.
func calculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	backoff := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffFactor, float64(attempt-1))

	if cfg.Jitter > 0 {
		backoff += (rand.Float64()*2 - 1) * backoff * cfg.Jitter
	}
	if backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}
	if backoff < 0 {
		backoff = float64(cfg.InitialBackoff)
	}
	return time.Duration(backoff)
}
