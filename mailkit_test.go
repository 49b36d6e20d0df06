package mailkit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailkit"
	"github.com/dmitrymomot/mailkit/pkg/logger"
	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

type captured struct {
	mu   sync.Mutex
	msgs []*mailer.Message
}

func (c *captured) transport() mailer.TransportFunc {
	return func(_ context.Context, msg *mailer.Message, _ mailer.DeliveryOptions) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.msgs = append(c.msgs, msg)
		return nil
	}
}

func validConfig() mailkit.Config {
	return mailkit.Config{
		Email:    "noreply@example.com",
		Host:     "smtp.example.com",
		Password: "secret",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to smtp transport", func(t *testing.T) {
		t.Parallel()

		m, err := mailkit.New(validConfig(), mailkit.WithTemplateFS(fstest.MapFS{}))
		require.NoError(t, err)
		assert.Equal(t, 587, m.Config().Port)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Email = "not-an-address"
		_, err := mailkit.New(cfg)
		require.ErrorIs(t, err, mailkit.ErrInvalidConfig)
	})

	t.Run("smtp requires password", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Password = ""
		_, err := mailkit.New(cfg, mailkit.WithTemplateFS(fstest.MapFS{}))
		require.ErrorIs(t, err, mailkit.ErrInvalidConfig)
	})

	t.Run("custom transport skips smtp settings", func(t *testing.T) {
		t.Parallel()

		var c captured
		cfg := validConfig()
		cfg.Password = ""
		m, err := mailkit.New(cfg,
			mailkit.WithTransport(c.transport()),
			mailkit.WithTemplateFS(fstest.MapFS{}),
			mailkit.WithLogger(logger.NewNope()),
		)
		require.NoError(t, err)

		err = m.Send(context.Background(), mailkit.SendParams{
			To:      []string{"User@Example.com"},
			Subject: "Hi",
			Body:    "hello",
		})
		require.NoError(t, err)
		require.Len(t, c.msgs, 1)
		assert.Equal(t, "user@example.com", c.msgs[0].To[0].String())
	})

	t.Run("missing template dir", func(t *testing.T) {
		t.Parallel()

		var c captured
		cfg := validConfig()
		cfg.TemplateDir = t.TempDir() + "/absent"
		m, err := mailkit.New(cfg, mailkit.WithTransport(c.transport()))
		require.NoError(t, err)

		err = m.SendTemplate(context.Background(), mailkit.TemplateParams{
			To:       "user@example.com",
			Subject:  "Hi",
			Template: "welcome.html",
		})
		require.ErrorIs(t, err, mailkit.ErrRenderFailed)
		assert.ErrorIs(t, err, mailkit.ErrTemplateNotFound)
		assert.Empty(t, c.msgs)
	})

	t.Run("unknown default layout", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.DefaultLayout = "missing.html"
		_, err := mailkit.New(cfg,
			mailkit.WithTransport(mailer.TransportFunc(func(context.Context, *mailer.Message, mailer.DeliveryOptions) error { return nil })),
			mailkit.WithTemplateFS(fstest.MapFS{}),
		)
		require.ErrorIs(t, err, mailer.ErrLayoutNotFound)
	})
}

func TestNew_TemplateFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/base.html": {Data: []byte(`<html><body>{{ .Content }}</body></html>`)},
		"welcome.md":        {Data: []byte("---\nLayout: base.html\nSubject: Welcome {{ .Name }}\n---\n# Hi {{ .Name }}\n")},
	}

	var c captured
	m, err := mailkit.New(validConfig(), mailkit.WithTransport(c.transport()), mailkit.WithTemplateFS(fsys))
	require.NoError(t, err)

	err = m.SendTemplate(context.Background(), mailkit.TemplateParams{
		To:       "user@example.com",
		Template: "welcome.md",
		Context:  mailer.MustContextOf(map[string]any{"Name": "Ann"}),
	})
	require.NoError(t, err)
	require.Len(t, c.msgs, 1)
	assert.Equal(t, "Welcome Ann", c.msgs[0].Subject)
	assert.True(t, c.msgs[0].Body.IsHTML())
	assert.Contains(t, c.msgs[0].Body.Content, "Hi Ann")
	assert.Contains(t, c.msgs[0].Body.Content, "<body>")
}

func TestFromEnv(t *testing.T) {
	t.Run("missing required vars", func(t *testing.T) {
		t.Setenv("EMAIL", "")
		t.Setenv("SMTP_SERVER", "")
		t.Setenv("EMAIL_PASSWORD", "")

		_, err := mailkit.FromEnv()
		require.ErrorIs(t, err, mailkit.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "EMAIL")
	})

	t.Run("valid env", func(t *testing.T) {
		t.Setenv("EMAIL", "noreply@example.com")
		t.Setenv("SMTP_SERVER", "smtp.example.com")
		t.Setenv("EMAIL_PASSWORD", "secret")
		t.Setenv("SMTP_PORT", "465")
		t.Setenv("MAILKIT_TEMPLATE_DIR", t.TempDir())
		t.Setenv("MAILKIT_LOG_LEVEL", "error")

		m, err := mailkit.FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 465, m.Config().Port)
		assert.Equal(t, "smtp.example.com", m.Config().Host)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("EMAIL", "noreply@example.com")
		t.Setenv("SMTP_SERVER", "smtp.example.com")
		t.Setenv("EMAIL_PASSWORD", "secret")
		t.Setenv("SMTP_PORT", "smtp")

		_, err := mailkit.FromEnv()
		require.Error(t, err)
		assert.True(t, errors.Is(err, mailkit.ErrInvalidConfig))
	})
}

func TestMustFromEnv_Panics(t *testing.T) {
	t.Setenv("EMAIL", "")
	t.Setenv("SMTP_SERVER", "")
	t.Setenv("EMAIL_PASSWORD", "")

	assert.Panics(t, func() { mailkit.MustFromEnv() })
}
