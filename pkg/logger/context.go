package logger

import (
	"context"
	"log/slog"
)

type messageIDKey struct{}

// WithMessageID returns a context whose log records carry the given message id.
func WithMessageID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, messageIDKey{}, id)
}

// MessageID returns the message id stored on ctx, if any.
func MessageID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(messageIDKey{}).(string)
	return id, ok && id != ""
}

// MessageIDExtractor adds the message_id attribute set by WithMessageID.
func MessageIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := MessageID(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("message_id", id), true
}
