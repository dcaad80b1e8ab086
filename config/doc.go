// Package config loads service configuration from config.yml, .env files
// and the environment.
//
// Keys use mapstructure tags. Environment variables override file values by
// joining the key path with underscores, so LOGGING_LEVEL sets logging.level
// and LOOP_QUEUE_SIZE sets loop.queue_size.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Feed FeedConfig      `yaml:"feed" mapstructure:"feed"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load("editor", &cfg); err != nil { ... }
package config
