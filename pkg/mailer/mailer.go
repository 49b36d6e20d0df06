package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailkit/pkg/logger"
)

// Mailer builds messages and hands them to a Transport.
// It is immutable after New and safe for concurrent use.
type Mailer struct {
	cfg       Config
	transport Transport
	renderer  Renderer
	logger    *slog.Logger
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the mailer logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRenderer sets the renderer used by SendTemplate.
func WithRenderer(r Renderer) Option {
	return func(m *Mailer) {
		if r != nil {
			m.renderer = r
		}
	}
}

// New creates a Mailer. Zero Port, Timeout and BulkConcurrency take their defaults;
// the resulting config must pass Config.Validate.
func New(cfg Config, transport Transport, opts ...Option) (*Mailer, error) {
	if transport == nil {
		return nil, fmt.Errorf("%w: transport is required", ErrInvalidConfig)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mailer{
		cfg:       cfg,
		transport: transport,
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns a copy of the mailer configuration.
func (m *Mailer) Config() Config {
	return m.cfg
}

// Logger returns the mailer logger.
func (m *Mailer) Logger() *slog.Logger {
	return m.logger
}

// Build assembles a message using the mailer configuration.
func (m *Mailer) Build(params BuildParams) (*Message, error) {
	return Build(m.cfg, params)
}

// SendParams contains parameters for a single send.
type SendParams struct {
	To          []string // At least one recipient
	Subject     string
	Body        string
	HTML        bool   // Body is HTML rather than plain text
	Text        string // Plain-text alternative for an HTML body; derived from Body when empty
	Cc          []string
	Bcc         []string
	Attachments []string // File paths
	UseTLS      bool     // Force implicit TLS regardless of port
}

func (p SendParams) buildParams() BuildParams {
	body := TextBody(p.Body)
	if p.HTML {
		body = HTMLBody(p.Body)
		body.Text = p.Text
	}
	return BuildParams{
		Subject:     p.Subject,
		To:          p.To,
		Cc:          p.Cc,
		Bcc:         p.Bcc,
		Body:        body,
		Attachments: p.Attachments,
	}
}

// Send builds the message and delivers it synchronously.
// Each call is one delivery attempt; calling twice sends twice.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	m.logger.InfoContext(ctx, "sending email",
		slog.Any("to", params.To),
		slog.String("subject", params.Subject),
	)

	msg, err := m.Build(params.buildParams())
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to build email", slog.String("error", err.Error()))
		return err
	}
	return m.deliver(ctx, msg, params.UseTLS)
}

// SendAsync builds the message on the calling goroutine and delivers it on
// another one. Build errors are reported through the returned Future.
func (m *Mailer) SendAsync(ctx context.Context, params SendParams) *Future {
	m.logger.InfoContext(ctx, "sending email asynchronously",
		slog.Any("to", params.To),
		slog.String("subject", params.Subject),
	)

	msg, err := m.Build(params.buildParams())
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to build email", slog.String("error", err.Error()))
		return completed(err)
	}

	return goAsync(ctx, func(ctx context.Context) error {
		return m.deliver(ctx, msg, params.UseTLS)
	})
}

func (m *Mailer) deliver(ctx context.Context, msg *Message, useTLS bool) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	opts := DeliveryOptions{
		TLS:             ResolveTLS(m.cfg.Port, useTLS),
		TextAlternative: m.cfg.TextAlternative,
	}
	ctx = logger.WithMessageID(ctx, msg.MessageID)

	if err := m.transport.Send(ctx, msg, opts); err != nil {
		m.logger.ErrorContext(ctx, "failed to send email",
			slog.Any("to", Strings(msg.To)),
			slog.String("tls", opts.TLS.String()),
			slog.String("error", err.Error()),
		)
		return errors.Join(ErrSendFailed, err)
	}

	m.logger.InfoContext(ctx, "email sent", slog.Any("to", Strings(msg.To)))
	return nil
}

// BulkParams contains parameters for sending the same email to many recipients.
type BulkParams struct {
	Recipients  []string // Each gets an independent send as the sole To
	Subject     string
	Body        string
	HTML        bool
	Cc          []string // Copied on every send
	Bcc         []string // Copied on every send
	Attachments []string // Re-read for every recipient
	UseTLS      bool
}

func (p BulkParams) single(rcpt string) SendParams {
	return SendParams{
		To:          []string{rcpt},
		Subject:     p.Subject,
		Body:        p.Body,
		HTML:        p.HTML,
		Cc:          p.Cc,
		Bcc:         p.Bcc,
		Attachments: p.Attachments,
		UseTLS:      p.UseTLS,
	}
}

// BulkError reports which recipient stopped a bulk send.
type BulkError struct {
	Index     int
	Recipient string
	Err       error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk send stopped at recipient %d (%s): %v", e.Index, e.Recipient, e.Err)
}

func (e *BulkError) Unwrap() error {
	return e.Err
}

// SendBulk sends one email per recipient, in order. It stops at the first
// failure and returns it as a *BulkError; later recipients are not sent.
func (m *Mailer) SendBulk(ctx context.Context, params BulkParams) error {
	for i, rcpt := range params.Recipients {
		m.logger.InfoContext(ctx, "bulk sending",
			slog.Int("index", i),
			slog.String("recipient", rcpt),
		)
		if err := m.Send(ctx, params.single(rcpt)); err != nil {
			return &BulkError{Index: i, Recipient: rcpt, Err: err}
		}
	}
	return nil
}

// SendBulkAsync is like SendBulk but runs up to Config.BulkConcurrency sends
// at once. The first failure cancels the sends still running and is returned;
// delivery order is not guaranteed.
func (m *Mailer) SendBulkAsync(ctx context.Context, params BulkParams) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.BulkConcurrency)

	for i, rcpt := range params.Recipients {
		g.Go(func() error {
			if err := m.Send(gctx, params.single(rcpt)); err != nil {
				return &BulkError{Index: i, Recipient: rcpt, Err: err}
			}
			return nil
		})
	}
	return g.Wait()
}

// TemplateParams contains parameters for a templated send.
type TemplateParams struct {
	To          string
	Subject     string // Overrides the template subject when set
	Template    string // Template name relative to the template root, e.g. "welcome.html"
	Context     Object
	Cc          []string
	Bcc         []string
	Attachments []string
	UseTLS      bool
}

// SendTemplate renders the template into an HTML body and sends it.
// Render failures abort the send before any network activity.
// Subject resolution: params.Subject > template front matter.
func (m *Mailer) SendTemplate(ctx context.Context, params TemplateParams) error {
	m.logger.InfoContext(ctx, "sending templated email",
		slog.String("to", params.To),
		slog.String("template", params.Template),
	)

	if m.renderer == nil {
		return errors.Join(ErrRenderFailed, ErrNoRenderer)
	}

	body, err := m.renderer.Render(params.Template, params.Context)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to render template",
			slog.String("template", params.Template),
			slog.String("error", err.Error()),
		)
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		if sr, ok := m.renderer.(SubjectRenderer); ok {
			s, _, err := sr.Subject(params.Template, params.Context)
			if err != nil {
				return errors.Join(ErrRenderFailed, err)
			}
			subject = s
		}
	}

	var text string
	if tr, ok := m.renderer.(TextRenderer); ok && m.cfg.TextAlternative {
		t, _, err := tr.RenderText(params.Template, params.Context)
		if err != nil {
			return errors.Join(ErrRenderFailed, err)
		}
		text = t
	}

	return m.Send(ctx, SendParams{
		To:          []string{params.To},
		Subject:     subject,
		Body:        body,
		HTML:        true,
		Text:        text,
		Cc:          params.Cc,
		Bcc:         params.Bcc,
		Attachments: params.Attachments,
		UseTLS:      params.UseTLS,
	})
}
