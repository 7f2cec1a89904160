// Package ports defines the core interfaces for the dev server.
package ports

import (
	"io"
	"log/slog"
)

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a debug message with optional slog attributes.
	Debug(msg string, args ...any)
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error, rendering zerr chains hierarchically.
	Error(err error)

	// SetOutput updates the output destination.
	SetOutput(w io.Writer)
	// SetJSON switches between JSON and pretty output.
	SetJSON(enable bool)
	// SetDebug lowers the level threshold to include debug records.
	SetDebug(enable bool)

	// Slog exposes the underlying structured logger for components that take
	// a *slog.Logger, such as the middleware.
	Slog() *slog.Logger
}
