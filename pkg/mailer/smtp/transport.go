package smtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// Transport implements mailer.Transport over SMTP.
type Transport struct {
	config Config
}

// New creates an SMTP transport. Zero Port and Timeout take the mailer defaults.
func New(cfg Config) (*Transport, error) {
	if cfg.Port == 0 {
		cfg.Port = mailer.DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = mailer.DefaultTimeout
	}

	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", mailer.ErrInvalidConfig)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", mailer.ErrInvalidConfig)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: Timeout must be positive", mailer.ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", mailer.ErrInvalidConfig)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", mailer.ErrInvalidConfig)
	}

	return &Transport{config: cfg}, nil
}

// MustNew is like New but panics on invalid config.
func MustNew(cfg Config) *Transport {
	t, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Send implements mailer.Transport. It dials, authenticates and submits msg
// in one session.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message, opts mailer.DeliveryOptions) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	}

	m, err := toMsg(msg, opts)
	if err != nil {
		return err
	}

	client, err := t.newClient(opts.TLS)
	if err != nil {
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return classify(err)
	}
	return nil
}

func (t *Transport) newClient(mode mailer.TLSMode) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(t.config.Port),
		mail.WithTimeout(t.config.Timeout),
		mail.WithSMTPAuthCustom(newAuth(t.config)),
	}
	if mode == mailer.TLSImplicit {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(t.config.Host, opts...)
}

// toMsg converts msg into a go-mail message. The only multipart/alternative
// case is an HTML body with TextAlternative set.
func toMsg(msg *mailer.Message, opts mailer.DeliveryOptions) (*mail.Msg, error) {
	m := mail.NewMsg()

	if err := m.From(msg.From.String()); err != nil {
		return nil, fmt.Errorf("%w: sender %q: %w", mailer.ErrRejected, msg.From, err)
	}
	if err := m.To(mailer.Strings(msg.To)...); err != nil {
		return nil, fmt.Errorf("%w: to: %w", mailer.ErrRejected, err)
	}
	if len(msg.Cc) > 0 {
		if err := m.Cc(mailer.Strings(msg.Cc)...); err != nil {
			return nil, fmt.Errorf("%w: cc: %w", mailer.ErrRejected, err)
		}
	}
	if len(msg.Bcc) > 0 {
		if err := m.Bcc(mailer.Strings(msg.Bcc)...); err != nil {
			return nil, fmt.Errorf("%w: bcc: %w", mailer.ErrRejected, err)
		}
	}

	m.Subject(msg.Subject)
	if msg.MessageID != "" {
		m.SetMessageIDWithValue(msg.MessageID)
	}
	m.SetDate()

	switch text, html := msg.Alternatives(opts); {
	case !msg.Body.IsHTML():
		m.SetBodyString(mail.TypeTextPlain, text)
	case text == "":
		m.SetBodyString(mail.TypeTextHTML, html)
	default:
		m.SetBodyString(mail.TypeTextPlain, text)
		m.AddAlternativeString(mail.TypeTextHTML, html)
	}

	for _, a := range msg.Attachments {
		err := m.AttachReader(a.Filename, bytes.NewReader(a.Content),
			mail.WithFileContentType(mail.ContentType(a.ContentType)),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", mailer.ErrAttachment, a.Filename, err)
		}
	}

	return m, nil
}

// classify maps a go-mail failure onto the mailer error kinds.
func classify(err error) error {
	var (
		sendErr  *mail.SendError
		protoErr *textproto.Error
		netErr   net.Error
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	case errors.As(err, &protoErr):
		if isAuthCode(protoErr.Code) {
			return fmt.Errorf("%w: %w", mailer.ErrAuth, err)
		}
		return fmt.Errorf("%w: %w", mailer.ErrRejected, err)
	case errors.As(err, &sendErr):
		if isAuthCode(sendErr.ErrorCode()) {
			return fmt.Errorf("%w: %w", mailer.ErrAuth, err)
		}
		return fmt.Errorf("%w: %w", mailer.ErrRejected, err)
	case errors.As(err, &netErr):
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	default:
		return fmt.Errorf("%w: %w", mailer.ErrConnection, err)
	}
}

// isAuthCode reports SMTP replies that mean the credentials were refused.
func isAuthCode(code int) bool {
	switch code {
	case 530, 534, 535, 538:
		return true
	}
	return false
}
