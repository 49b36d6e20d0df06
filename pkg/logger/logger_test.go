package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailkit/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		out = append(out, rec)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestNewWithConfig_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithConfig(&buf, logger.Config{Level: "warn"})

	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "warn message", recs[0]["msg"])
	assert.Equal(t, "error message", recs[1]["msg"])
}

func TestNewWithConfig_MessageID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithConfig(&buf, logger.Config{})

	ctx := logger.WithMessageID(context.Background(), "abc@example.com")
	log.InfoContext(ctx, "email sent")
	log.InfoContext(context.Background(), "no id")

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "abc@example.com", recs[0]["message_id"])
	assert.NotContains(t, recs[1], "message_id")
}

func TestNewWithConfig_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithConfig(&buf, logger.Config{Format: "text"})
	log.Info("hello", slog.String("to", "user@example.com"))

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "to=user@example.com")
}

func TestNewLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	t.Run("runs extractors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		tenant := func(ctx context.Context) (slog.Attr, bool) {
			return slog.String("tenant", "acme"), true
		}
		log := slog.New(logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), nil, tenant))
		log.With(slog.String("component", "mailer")).WithGroup("g").Info("hi", slog.Int("n", 1))

		recs := decodeLines(t, &buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "mailer", recs[0]["component"])
		group, ok := recs[0]["g"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "acme", group["tenant"])
	})

	t.Run("returns next without extractors", func(t *testing.T) {
		t.Parallel()

		next := slog.NewJSONHandler(&bytes.Buffer{}, nil)
		assert.Same(t, next, logger.NewLogHandlerDecorator(next, nil))
	})
}

func TestWithMessageID_Empty(t *testing.T) {
	t.Parallel()

	ctx := logger.WithMessageID(context.Background(), "")
	_, ok := logger.MessageID(ctx)
	assert.False(t, ok)
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestNewWithSentry_EmptyDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.SentryConfig{})
	require.NotNil(t, log)
}
