package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Level  string `env:"MAILKIT_LOG_LEVEL" envDefault:"info"`  // debug, info, warn or error
	Format string `env:"MAILKIT_LOG_FORMAT" envDefault:"json"` // json or text
	Sentry SentryConfig
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a JSON logger on stdout at info level with optional context extractors.
// Messages always carry a message_id attribute when one is set on the context.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(os.Stdout, Config{}, extractors...)
}

// NewWithConfig creates a logger writing to w with the configured level and format.
// When cfg.Sentry.DSN is set, records are also forwarded to Sentry.
func NewWithConfig(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	if cfg.Sentry.DSN != "" {
		handler = withSentry(handler, cfg.Sentry)
	}

	extractors = append([]ContextExtractor{MessageIDExtractor}, extractors...)
	return slog.New(NewLogHandlerDecorator(handler, extractors...))
}
