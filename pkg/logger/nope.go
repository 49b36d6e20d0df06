package logger

import "log/slog"

// NewNope creates a logger that discards all output.
// Mailers use it until a logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
