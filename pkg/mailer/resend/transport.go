// Package resend delivers mailer messages through the Resend HTTP API.
package resend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// Transport implements mailer.Transport using the Resend API.
// DeliveryOptions.TLS does not apply; the API is always reached over HTTPS.
type Transport struct {
	client *resend.Client
	config Config
}

// Option configures a Transport.
type Option func(*transportOptions)

type transportOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *transportOptions) {
		o.httpClient = c
	}
}

// New creates a Resend transport.
func New(cfg Config, opts ...Option) (*Transport, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", mailer.ErrInvalidConfig)
	}

	var o transportOptions
	for _, opt := range opts {
		opt(&o)
	}

	client := resend.NewClient(cfg.APIKey)
	if o.httpClient != nil {
		client = resend.NewCustomClient(o.httpClient, cfg.APIKey)
	}

	return &Transport{client: client, config: cfg}, nil
}

// Send implements mailer.Transport.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message, opts mailer.DeliveryOptions) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	}

	_, err := t.client.Emails.SendWithContext(ctx, t.toRequest(msg, opts))
	if err != nil {
		return classify(fmt.Errorf("resend: failed to send email: %w", err))
	}
	return nil
}

func (t *Transport) toRequest(msg *mailer.Message, opts mailer.DeliveryOptions) *resend.SendEmailRequest {
	from := msg.From.String()
	if t.config.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", t.config.SenderName, from)
	}

	text, html := msg.Alternatives(opts)
	req := &resend.SendEmailRequest{
		From:    from,
		To:      mailer.Strings(msg.To),
		Cc:      mailer.Strings(msg.Cc),
		Bcc:     mailer.Strings(msg.Bcc),
		Subject: msg.Subject,
		Html:    html,
		Text:    text,
	}
	if msg.MessageID != "" {
		req.Headers = map[string]string{"Message-ID": "<" + msg.MessageID + ">"}
	}

	if len(msg.Attachments) > 0 {
		req.Attachments = convertAttachments(msg.Attachments)
	}
	return req
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		}
	}
	return result
}

func classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), errors.As(err, &netErr):
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	default:
		return fmt.Errorf("%w: %w", mailer.ErrRejected, err)
	}
}
