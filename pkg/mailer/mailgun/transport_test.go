package mailgun_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
	"github.com/dmitrymomot/mailkit/pkg/mailer/mailgun"
)

type redirect struct {
	target *url.URL
}

func (r redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = r.target.Scheme
	req.URL.Host = r.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestTransport(t *testing.T, h http.HandlerFunc) *mailgun.Transport {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	tr, err := mailgun.New(
		mailgun.Config{Domain: "mg.example.com", APIKey: "key-test"},
		mailgun.WithHTTPClient(&http.Client{Transport: redirect{target: target}}),
	)
	require.NoError(t, err)
	return tr
}

func testMessage(t *testing.T, body mailer.Body) *mailer.Message {
	t.Helper()

	msg, err := mailer.Build(mailer.Config{Email: "sender@example.com"}, mailer.BuildParams{
		Subject: "Hello",
		To:      []string{"user@example.com"},
		Cc:      []string{"cc@example.com"},
		Body:    body,
	})
	require.NoError(t, err)
	return msg
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     mailgun.Config
		wantErr bool
	}{
		{name: "valid", cfg: mailgun.Config{Domain: "mg.example.com", APIKey: "key"}},
		{name: "eu region", cfg: mailgun.Config{Domain: "mg.example.com", APIKey: "key", Region: "eu"}},
		{name: "missing domain", cfg: mailgun.Config{APIKey: "key"}, wantErr: true},
		{name: "missing key", cfg: mailgun.Config{Domain: "mg.example.com"}, wantErr: true},
		{name: "unknown region", cfg: mailgun.Config{Domain: "mg.example.com", APIKey: "key", Region: "ap"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr, err := mailgun.New(tt.cfg)
			if tt.wantErr {
				require.ErrorIs(t, err, mailer.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, tr)
		})
	}
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	t.Run("posts the message", func(t *testing.T) {
		t.Parallel()

		var (
			path string
			form url.Values
		)
		tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_ = r.FormValue("from")
			form = r.Form
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"<20240101.1@mg.example.com>","message":"Queued. Thank you."}`))
		})

		err := tr.Send(context.Background(), testMessage(t, mailer.TextBody("hello")), mailer.DeliveryOptions{})
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(path, "/mg.example.com/messages"), path)
		assert.Equal(t, "sender@example.com", form.Get("from"))
		assert.Equal(t, []string{"user@example.com"}, form["to"])
		assert.Equal(t, []string{"cc@example.com"}, form["cc"])
		assert.Equal(t, "Hello", form.Get("subject"))
		assert.Equal(t, "hello", form.Get("text"))
		assert.Empty(t, form.Get("html"))
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()

		tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Forbidden"))
		})

		err := tr.Send(context.Background(), testMessage(t, mailer.HTMLBody("<p>hi</p>")), mailer.DeliveryOptions{})
		require.ErrorIs(t, err, mailer.ErrAuth)
	})

	t.Run("bad request", func(t *testing.T) {
		t.Parallel()

		tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"'to' parameter is not a valid address"}`))
		})

		err := tr.Send(context.Background(), testMessage(t, mailer.TextBody("hi")), mailer.DeliveryOptions{})
		require.ErrorIs(t, err, mailer.ErrRejected)
	})
}
