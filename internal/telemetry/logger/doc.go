// Package logger provides structured logging for Diorite.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: handler construction, dynamic level and the global logger
//   - context.go: logger and request id propagation through context
//   - attrs.go: rendering of domain values in log attributes
//   - badger.go: adapter for the printf-style logger Badger expects
//
// Features:
//
//   - JSON and text output formats
//   - Runtime level changes (used by the config watcher)
//   - Materials and other fmt.Stringer values logged by name
package logger
