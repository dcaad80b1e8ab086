package config

import (
	"fmt"

	"github.com/kbukum/flinker/command"
	"github.com/kbukum/flinker/logger"
	"github.com/kbukum/flinker/observability"
	"github.com/kbukum/flinker/rx"
	"github.com/kbukum/flinker/validation"
)

// Config is what Load accepts: a struct that fills its own defaults and
// validates itself. Structs embedding ServiceConfig satisfy it.
type Config interface {
	ApplyDefaults()
	Validate() error
}

// LoopConfig sizes the owner event loop.
type LoopConfig struct {
	QueueSize int `yaml:"queue_size" mapstructure:"queue_size" validate:"gte=0,lte=1048576"`
}

// NewLoop creates the loop described by c.
func (c LoopConfig) NewLoop() *rx.Loop { return rx.NewLoop(c.QueueSize) }

// ServiceConfig holds the settings every flinker service carries. Embed it
// with mapstructure squash:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Feed FeedConfig      `yaml:"feed" mapstructure:"feed"`
//	}
type ServiceConfig struct {
	Name        string                     `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string                     `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string                     `yaml:"version" mapstructure:"version"`
	Debug       bool                       `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config              `yaml:"logging" mapstructure:"logging"`
	Loop        LoopConfig                 `yaml:"loop" mapstructure:"loop"`
	Commands    command.Config             `yaml:"commands" mapstructure:"commands"`
	Metrics     observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
	Tracing     observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
}

// GetServiceConfig returns c. Embedding structs get it promoted.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults fills unset fields. Embedding structs that override it call
// c.ServiceConfig.ApplyDefaults first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Loop.QueueSize == 0 {
		c.Loop.QueueSize = rx.DefaultLoopQueueSize
	}
	c.Logging.ApplyDefaults()
	c.Commands.ApplyDefaults(c.Name)
	c.Metrics.ApplyDefaults(c.Name, c.Environment)
	c.Tracing.ApplyDefaults(c.Name, c.Environment)
	if c.Version != "" {
		c.Metrics.ServiceVersion = c.Version
		c.Tracing.ServiceVersion = c.Version
	}
}

// Validate checks the struct tags, then the logging settings.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// Load reads serviceName's configuration into cfg, applies defaults and
// validates the result.
func Load(serviceName string, cfg Config, opts ...LoaderOption) error {
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	return cfg.Validate()
}
