// Package logger provides structured logging with context extraction and Sentry integration.
//
// It extends log/slog with automatic context-based attribute injection and optional
// Sentry error reporting. Loggers are always passed explicitly; the package keeps no
// global logger.
//
// # Basic Usage
//
//	log := logger.New()
//
//	ctx := logger.WithMessageID(context.Background(), "1c0d...@example.com")
//	log.InfoContext(ctx, "email sent", slog.String("to", "user@example.com"))
//	// Output: {"level":"INFO","msg":"email sent","to":"user@example.com","message_id":"1c0d...@example.com"}
//
// # Configuration
//
// Config embeds in an env-parsed app config:
//
//	var cfg logger.Config // MAILKIT_LOG_LEVEL, MAILKIT_LOG_FORMAT, SENTRY_DSN, SENTRY_ENVIRONMENT
//	config.MustLoad(&cfg)
//	log := logger.NewWithConfig(os.Stdout, cfg)
//
// Levels are debug, info (default), warn and error. Unknown names fall back to info.
//
// # Context Extractors
//
// A ContextExtractor pulls an attribute from the context on every log call:
//
//	tenant := func(ctx context.Context) (slog.Attr, bool) {
//		id, ok := ctx.Value(tenantKey{}).(string)
//		return slog.String("tenant", id), ok
//	}
//	log := logger.New(tenant)
//
// MessageIDExtractor is always installed by New and NewWithConfig.
//
// # Sentry Integration
//
// When a DSN is configured, errors create Sentry Issues and warnings are stored as
// logs. If the DSN is empty or Sentry fails to initialize, logging continues to the
// primary writer only.
package logger
