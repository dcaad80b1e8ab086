// Package validation validates configuration structs with struct tags.
//
// Field names in messages follow the mapstructure tags, so a failure reads
// the way the key appears in config.yml:
//
//	type LoopConfig struct {
//	    QueueSize int `mapstructure:"queue_size" validate:"gte=1"`
//	}
//	err := validation.Validate(cfg) // "loop.queue_size: must be at least 1"
package validation
