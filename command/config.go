package command

import (
	"time"

	"github.com/kbukum/flinker/resilience"
)

// Config configures a Runner.
type Config struct {
	// Timeout bounds one run, retries included. Zero means no bound.
	Timeout        time.Duration                   `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	Retry          resilience.RetryConfig          `yaml:"retry" mapstructure:"retry"`
	CircuitBreaker resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
	Bulkhead       resilience.BulkheadConfig       `yaml:"bulkhead" mapstructure:"bulkhead"`
}

// DefaultConfig returns a 30 second timeout and the resilience defaults.
func DefaultConfig(name string) Config {
	return Config{
		Timeout:        30 * time.Second,
		Retry:          resilience.DefaultRetryConfig(),
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(name),
		Bulkhead:       resilience.DefaultBulkheadConfig(name),
	}
}

// ApplyDefaults fills zero fields. name labels the breaker and bulkhead
// when they have no name of their own.
func (c *Config) ApplyDefaults(name string) {
	d := DefaultConfig(name)
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	c.Retry.ApplyDefaults()
	if c.CircuitBreaker.Name == "" {
		c.CircuitBreaker.Name = name
	}
	if c.CircuitBreaker.MaxFailures == 0 {
		c.CircuitBreaker.MaxFailures = d.CircuitBreaker.MaxFailures
	}
	if c.CircuitBreaker.Timeout == 0 {
		c.CircuitBreaker.Timeout = d.CircuitBreaker.Timeout
	}
	if c.CircuitBreaker.HalfOpenMaxCalls == 0 {
		c.CircuitBreaker.HalfOpenMaxCalls = d.CircuitBreaker.HalfOpenMaxCalls
	}
	if c.Bulkhead.Name == "" {
		c.Bulkhead.Name = name
	}
	if c.Bulkhead.MaxConcurrent == 0 {
		c.Bulkhead.MaxConcurrent = d.Bulkhead.MaxConcurrent
	}
}
