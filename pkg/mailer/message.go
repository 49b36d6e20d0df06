package mailer

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailkit/pkg/sanitizer"
)

// BodyKind tells whether a body is plain text or HTML.
type BodyKind uint8

const (
	// BodyText is a text/plain body.
	BodyText BodyKind = iota
	// BodyHTML is a text/html body.
	BodyHTML
)

func (k BodyKind) String() string {
	if k == BodyHTML {
		return "text/html"
	}
	return "text/plain"
}

// Body is the single body part of a message. The kind is chosen by the caller
// and never inferred from the content.
type Body struct {
	Kind    BodyKind
	Content string
	Text    string // Plain-text alternative of an HTML body; derived from Content when empty
}

// TextBody returns a plain-text body.
func TextBody(content string) Body {
	return Body{Kind: BodyText, Content: content}
}

// HTMLBody returns an HTML body.
func HTMLBody(content string) Body {
	return Body{Kind: BodyHTML, Content: content}
}

// IsHTML reports whether the body is HTML.
func (b Body) IsHTML() bool {
	return b.Kind == BodyHTML
}

// Message is a fully assembled email ready for a Transport.
type Message struct {
	From        Address
	To          []Address // At least one
	Cc          []Address
	Bcc         []Address
	Subject     string
	Body        Body
	Attachments []Attachment
	MessageID   string // Without angle brackets
}

// Recipients returns every envelope recipient: to, cc, then bcc.
func (m *Message) Recipients() []Address {
	out := make([]Address, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return append(out, m.Bcc...)
}

// Alternatives returns the plain-text and HTML renditions a transport should
// send. Exactly one is set unless the body is HTML and opts.TextAlternative
// asks for a derived plain-text part.
func (m *Message) Alternatives(opts DeliveryOptions) (text, html string) {
	if !m.Body.IsHTML() {
		return m.Body.Content, ""
	}
	if opts.TextAlternative {
		text = m.Body.Text
		if text == "" {
			text = sanitizer.HTMLToText(m.Body.Content)
		}
	}
	return text, m.Body.Content
}

// BuildParams describes a message before validation.
type BuildParams struct {
	Subject     string
	To          []string
	Cc          []string
	Bcc         []string
	Body        Body
	Attachments []string // File paths, read fully at build time
}

// Build assembles a message from cfg and params.
// An empty recipient list fails with ErrBuildFailed before anything else is
// looked at. Addresses then go through cfg's address policy and the first
// rejected one is returned as is. An unreadable attachment fails with
// ErrBuildFailed. No partial message is ever returned.
func Build(cfg Config, params BuildParams) (*Message, error) {
	if len(params.To) == 0 {
		return nil, errors.Join(ErrBuildFailed, ErrNoRecipient)
	}
	policy := cfg.Policy()

	from, err := policy.Accept(cfg.Email)
	if err != nil {
		return nil, err
	}

	to, err := policy.AcceptAll(params.To)
	if err != nil {
		return nil, err
	}
	cc, err := policy.AcceptAll(params.Cc)
	if err != nil {
		return nil, err
	}
	bcc, err := policy.AcceptAll(params.Bcc)
	if err != nil {
		return nil, err
	}
	attachments, err := loadAttachments(params.Attachments)
	if err != nil {
		return nil, errors.Join(ErrBuildFailed, err)
	}

	return &Message{
		From:        from,
		To:          to,
		Cc:          cc,
		Bcc:         bcc,
		Subject:     params.Subject,
		Body:        params.Body,
		Attachments: attachments,
		MessageID:   newMessageID(from),
	}, nil
}

// newMessageID returns a globally unique id scoped to the sender's domain.
func newMessageID(from Address) string {
	domain := from.Domain()
	if domain == "" {
		domain = "localhost"
	}
	return uuid.NewString() + "@" + domain
}
