// Package logger provides structured logging backed by zerolog.
//
// Loggers are component-scoped: the rx package logs publisher lifecycle
// under component "rx", the event loop under "rx.loop", and producers under
// their own names. A component can be given a dedicated logger with
// Register; otherwise Get derives one from the global logger.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	logger.Init(cfg.Logging)
//	log := logger.Get("store")
//	log.Info("saved", logger.Fields(logger.FieldRequestID, id))
package logger
