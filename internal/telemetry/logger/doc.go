// Package logger provides structured logging for steam-cli.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: handler construction, level control, default logger
//   - context.go: context-carried logger and request IDs
//   - redact.go: bearer token and secret redaction
//
// Logs go to stderr so that command output on stdout stays machine
// readable.
package logger
