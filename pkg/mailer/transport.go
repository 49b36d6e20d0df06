package mailer

import "context"

// TLSMode selects how a transport secures its connection.
type TLSMode uint8

const (
	// TLSStartTLS connects in plain text and upgrades when the server offers STARTTLS.
	TLSStartTLS TLSMode = iota

	// TLSImplicit negotiates TLS before any SMTP traffic.
	TLSImplicit
)

func (m TLSMode) String() string {
	if m == TLSImplicit {
		return "tls"
	}
	return "starttls"
}

// ResolveTLS picks implicit TLS for the SMTPS port or when the caller asks for
// it, and opportunistic STARTTLS otherwise.
func ResolveTLS(port int, useTLS bool) TLSMode {
	if useTLS || port == ImplicitTLSPort {
		return TLSImplicit
	}
	return TLSStartTLS
}

// DeliveryOptions carries per-send transport settings.
type DeliveryOptions struct {
	TLS TLSMode

	// TextAlternative asks the transport to add a plain-text part derived
	// from an HTML body. The message itself still has exactly one body.
	TextAlternative bool
}

// Transport delivers a built message. Implementations must not share
// connection state between calls, so a Transport is safe for concurrent use.
type Transport interface {
	// Send makes one delivery attempt. Failures are returned as is; the
	// caller never retries.
	Send(ctx context.Context, msg *Message, opts DeliveryOptions) error
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, msg *Message, opts DeliveryOptions) error

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, msg *Message, opts DeliveryOptions) error {
	return f(ctx, msg, opts)
}
