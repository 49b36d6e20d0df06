// Package mailgun delivers mailer messages through the Mailgun HTTP API.
package mailgun

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// Transport implements mailer.Transport using Mailgun.
// DeliveryOptions.TLS does not apply; the API is always reached over HTTPS.
type Transport struct {
	client *mailgun.MailgunImpl
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client.SetClient(c)
		}
	}
}

// New creates a Mailgun transport.
func New(cfg Config, opts ...Option) (*Transport, error) {
	if cfg.Domain == "" {
		return nil, fmt.Errorf("%w: Domain is required", mailer.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", mailer.ErrInvalidConfig)
	}

	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	switch cfg.Region {
	case "", "us":
	case "eu":
		mg.SetAPIBase(mailgun.APIBaseEU)
	default:
		return nil, fmt.Errorf("%w: Region must be us or eu", mailer.ErrInvalidConfig)
	}

	t := &Transport{client: mg}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Send implements mailer.Transport.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message, opts mailer.DeliveryOptions) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	}

	if _, _, err := t.client.Send(ctx, t.toMessage(msg, opts)); err != nil {
		return classify(err)
	}
	return nil
}

func (t *Transport) toMessage(msg *mailer.Message, opts mailer.DeliveryOptions) *mailgun.Message {
	text, html := msg.Alternatives(opts)

	m := t.client.NewMessage(msg.From.String(), msg.Subject, text, mailer.Strings(msg.To)...)
	if html != "" {
		m.SetHtml(html)
	}
	for _, cc := range msg.Cc {
		m.AddCC(cc.String())
	}
	for _, bcc := range msg.Bcc {
		m.AddBCC(bcc.String())
	}
	if msg.MessageID != "" {
		m.AddHeader("Message-Id", "<"+msg.MessageID+">")
	}
	for _, a := range msg.Attachments {
		m.AddBufferAttachment(a.Filename, a.Content)
	}
	return m
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	}

	switch mailgun.GetStatusFromErr(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", mailer.ErrAuth, err)
	default:
		return fmt.Errorf("%w: %w", mailer.ErrRejected, err)
	}
}
