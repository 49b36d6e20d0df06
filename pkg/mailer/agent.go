package mailer

import (
	"context"
	"log/slog"
)

// SendAgent is the old sending API kept for existing callers.
//
// Deprecated: use Mailer directly.
type SendAgent struct {
	mailer *Mailer
}

// NewSendAgent wraps m.
//
// Deprecated: use Mailer directly.
func NewSendAgent(m *Mailer) *SendAgent {
	return &SendAgent{mailer: m}
}

// SendMail sends a plain-text email.
//
// Deprecated: use Mailer.Send.
func (a *SendAgent) SendMail(ctx context.Context, to []string, subject, body string, cc, bcc, attachments []string, useTLS bool) error {
	a.mailer.logger.WarnContext(ctx, "SendAgent is deprecated, use Mailer instead",
		slog.String("method", "SendMail"),
	)
	return a.mailer.Send(ctx, SendParams{
		To:          to,
		Subject:     subject,
		Body:        body,
		Cc:          cc,
		Bcc:         bcc,
		Attachments: attachments,
		UseTLS:      useTLS,
	})
}

// SendMailWithTemplate sends a templated email.
//
// Deprecated: use Mailer.SendTemplate.
func (a *SendAgent) SendMailWithTemplate(ctx context.Context, to, subject, templateName string, vars Object, cc, bcc, attachments []string, useTLS bool) error {
	a.mailer.logger.WarnContext(ctx, "SendMailWithTemplate is deprecated, use Mailer.SendTemplate instead",
		slog.String("method", "SendMailWithTemplate"),
	)
	return a.mailer.SendTemplate(ctx, TemplateParams{
		To:          to,
		Subject:     subject,
		Template:    templateName,
		Context:     vars,
		Cc:          cc,
		Bcc:         bcc,
		Attachments: attachments,
		UseTLS:      useTLS,
	})
}
