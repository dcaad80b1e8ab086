package rx

import "github.com/kbukum/flinker/logger"

// Option configures a publisher.
type Option func(*options)

type options struct {
	name      string
	scheduler Scheduler
	observer  Observer
	log       *logger.Logger
}

// WithName sets the name used in logs. Defaults to the variant kind.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithScheduler sets the scheduler used by delayed variants. Defaults to
// DefaultLoop().
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithObserver overrides the package observer for one publisher.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the logger. Defaults to the global logger tagged with
// component "rx".
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(kind string, opts []Option) options {
	o := options{name: kind}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = defaultLoop
	}
	if o.observer == nil {
		o.observer = defaultObserver()
	}
	if o.log == nil {
		o.log = logger.Get("rx")
	}
	return o
}
