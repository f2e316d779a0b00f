// Package logger provides structured logging for ssot using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
// The logger reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, LOG_NO_COLOR and
// LOG_TIMESTAMP through NewFromEnv, or takes an explicit Config.
//
// # Usage
//
//	log := logger.Get("config")
//	log.Info("resolved", logger.Fields(logger.FieldCount, 12))
package logger
