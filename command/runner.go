package command

import (
	"github.com/kbukum/flinker/logger"
	"github.com/kbukum/flinker/observability"
	"github.com/kbukum/flinker/resilience"
	"github.com/kbukum/flinker/rx"
)

// Runner holds what the commands of one service share: the owner loop and
// the resilience policy.
type Runner struct {
	loop     *rx.Loop
	cfg      Config
	service  string
	log      *logger.Logger
	metrics  *observability.Metrics
	breaker  *resilience.CircuitBreaker
	bulkhead *resilience.Bulkhead
}

// Option configures a Runner.
type Option func(*Runner)

// WithServiceName labels spans, metrics and logs. Defaults to "flinker".
func WithServiceName(name string) Option {
	return func(r *Runner) { r.service = name }
}

// WithMetrics records command metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithLogger replaces the "command" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// NewRunner creates a runner that resolves operations on loop.
func NewRunner(loop *rx.Loop, cfg Config, opts ...Option) *Runner {
	r := &Runner{loop: loop, service: "flinker"}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get("command")
	}
	cfg.ApplyDefaults(r.service)
	r.cfg = cfg
	r.breaker = resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	r.bulkhead = resilience.NewBulkhead(cfg.Bulkhead)
	return r
}

// Loop returns the owner loop.
func (r *Runner) Loop() *rx.Loop { return r.loop }

// Breaker returns the runner's circuit breaker.
func (r *Runner) Breaker() *resilience.CircuitBreaker { return r.breaker }
