// Package logging provides structured logging for the opsdeck dashboard.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the application. By default it is silent: the
// dashboard owns the terminal, and log output would corrupt the alternate
// screen. Set OPSDECK_LOG_LEVEL to enable output and OPSDECK_LOG_FILE to
// direct it somewhere tailable:
//
//	OPSDECK_LOG_LEVEL=debug OPSDECK_LOG_FILE=/tmp/opsdeck.log opsdeck
//
// # Log Levels
//
//   - Debug: event routing, screen transitions, task queue internals
//   - Info: task dispatch and completion, node connections
//   - Warn: dropped connections, queue pressure
//   - Error: startup failures
//
// All log functions use structured fields:
//
//	logging.Info("task sent", zap.String("task", task.Describe()))
package logging
