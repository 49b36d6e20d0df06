package mailer

import (
	"fmt"
	"time"
)

const (
	// DefaultPort is the SMTP submission port.
	DefaultPort = 587

	// ImplicitTLSPort is the well-known SMTPS port; connections to it always use implicit TLS.
	ImplicitTLSPort = 465

	// DefaultTimeout bounds each connection attempt.
	DefaultTimeout = 10 * time.Second

	// DefaultBulkConcurrency bounds SendBulkAsync.
	DefaultBulkConcurrency = 4
)

// Config holds the sending account and delivery settings.
// Embed this in your app config for env parsing with caarlos0/env.
// A Mailer copies it on construction; later changes to the original have no effect.
type Config struct {
	Email    string `env:"EMAIL,required,notEmpty"`          // Account address, used as sender and SMTP username
	Host     string `env:"SMTP_SERVER,required,notEmpty"`    // SMTP server host name
	Password string `env:"EMAIL_PASSWORD,required,notEmpty"` // SMTP credential

	Port    int           `env:"SMTP_PORT" envDefault:"587"`
	Timeout time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`

	// TrustAddresses disables address validation; raw strings are passed to the transport unchanged.
	TrustAddresses bool `env:"MAILKIT_TRUST_ADDRESSES" envDefault:"false"`

	TemplateDir     string `env:"MAILKIT_TEMPLATE_DIR" envDefault:"templates"`
	DefaultLayout   string `env:"MAILKIT_DEFAULT_LAYOUT"`
	TextAlternative bool   `env:"MAILKIT_TEXT_ALTERNATIVE" envDefault:"false"` // Add a plain-text part to HTML mail
	BulkConcurrency int    `env:"MAILKIT_BULK_CONCURRENCY" envDefault:"4"`
}

// Policy returns the address policy selected by TrustAddresses.
func (c Config) Policy() AddressPolicy {
	if c.TrustAddresses {
		return TrustAddresses
	}
	return ValidateAddresses
}

// Validate checks the values a Mailer cannot work without.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: Host is required", ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: Port must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: Timeout must not be negative", ErrInvalidConfig)
	}
	if c.BulkConcurrency < 0 {
		return fmt.Errorf("%w: BulkConcurrency must not be negative", ErrInvalidConfig)
	}
	if c.Email == "" {
		return fmt.Errorf("%w: Email is required", ErrInvalidConfig)
	}
	if _, err := c.Policy().Accept(c.Email); err != nil {
		return fmt.Errorf("%w: Email: %w", ErrInvalidConfig, err)
	}
	return nil
}

// WithDefaults returns a copy with zero values replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.BulkConcurrency == 0 {
		c.BulkConcurrency = DefaultBulkConcurrency
	}
	return c
}
