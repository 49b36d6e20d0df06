// Package postmark delivers mailer messages through Postmark's transactional API.
package postmark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// errCodeBadToken is Postmark's "bad or missing API token" error code.
const errCodeBadToken = 10

// Transport implements mailer.Transport using Postmark.
// DeliveryOptions.TLS does not apply; the API is always reached over HTTPS.
type Transport struct {
	client *postmark.Client
	config Config
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client.HTTPClient = c
		}
	}
}

// New creates a Postmark transport.
func New(cfg Config, opts ...Option) (*Transport, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", mailer.ErrInvalidConfig)
	}

	t := &Transport{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}
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

	resp, err := t.client.SendEmail(ctx, toEmail(msg, opts))
	if resp.ErrorCode > 0 {
		apiErr := fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message)
		if resp.ErrorCode == errCodeBadToken {
			return fmt.Errorf("%w: %w", mailer.ErrAuth, apiErr)
		}
		return fmt.Errorf("%w: %w", mailer.ErrRejected, apiErr)
	}
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
			return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
		}
		return fmt.Errorf("%w: %w", mailer.ErrRejected, err)
	}
	return nil
}

func toEmail(msg *mailer.Message, opts mailer.DeliveryOptions) postmark.Email {
	text, html := msg.Alternatives(opts)

	email := postmark.Email{
		From:     msg.From.String(),
		To:       strings.Join(mailer.Strings(msg.To), ","),
		Cc:       strings.Join(mailer.Strings(msg.Cc), ","),
		Bcc:      strings.Join(mailer.Strings(msg.Bcc), ","),
		Subject:  msg.Subject,
		HTMLBody: html,
		TextBody: text,
	}
	if msg.MessageID != "" {
		email.Headers = []postmark.Header{{Name: "Message-ID", Value: "<" + msg.MessageID + ">"}}
	}

	for _, a := range msg.Attachments {
		email.Attachments = append(email.Attachments, postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
		})
	}
	return email
}
