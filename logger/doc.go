// Package logger provides structured logging for lazyseq using zerolog.
//
// The library itself logs sparingly and only at debug level (for example
// when a single-use sequence is traversed a second time). Applications pick
// the level, format and destination through Config.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	logger.Init(logger.Config{Level: "debug", Format: "json"})
//	log := logger.Get("guard")
//	log.Debug("second traversal rejected", logger.Fields("kind", "Sequence"))
package logger
