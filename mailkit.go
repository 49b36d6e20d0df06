package mailkit

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dmitrymomot/mailkit/pkg/config"
	"github.com/dmitrymomot/mailkit/pkg/logger"
	"github.com/dmitrymomot/mailkit/pkg/mailer"
	"github.com/dmitrymomot/mailkit/pkg/mailer/smtp"
)

// Type aliases - public API
type (
	// Mailer builds messages and hands them to a transport.
	Mailer = mailer.Mailer

	// Config holds the sending account and delivery settings.
	Config = mailer.Config

	// SendParams contains parameters for a single send.
	SendParams = mailer.SendParams

	// BulkParams contains parameters for a per-recipient bulk send.
	BulkParams = mailer.BulkParams

	// TemplateParams contains parameters for a templated send.
	TemplateParams = mailer.TemplateParams

	// BulkError reports which recipient stopped a bulk send.
	BulkError = mailer.BulkError

	// Future is the handle returned by SendAsync.
	Future = mailer.Future

	// Transport delivers a built message.
	Transport = mailer.Transport

	// Renderer turns a template and context into an HTML body.
	Renderer = mailer.Renderer

	// Object is a template context.
	Object = mailer.Object

	// Value is a template context value.
	Value = mailer.Value

	// SendAgent is the deprecated flat-argument adapter.
	SendAgent = mailer.SendAgent
)

// Errors re-exported for errors.Is checks.
var (
	ErrInvalidAddress   = mailer.ErrInvalidAddress
	ErrBuildFailed      = mailer.ErrBuildFailed
	ErrNoRecipient      = mailer.ErrNoRecipient
	ErrAttachment       = mailer.ErrAttachment
	ErrRenderFailed     = mailer.ErrRenderFailed
	ErrTemplateNotFound = mailer.ErrTemplateNotFound
	ErrSendFailed       = mailer.ErrSendFailed
	ErrAuth             = mailer.ErrAuth
	ErrConnection       = mailer.ErrConnection
	ErrRejected         = mailer.ErrRejected
	ErrInvalidConfig    = mailer.ErrInvalidConfig
)

// EnvConfig is the environment-backed configuration read by FromEnv.
type EnvConfig struct {
	Mailer mailer.Config
	Log    logger.Config
}

// options collects what New wires around the mailer.
type options struct {
	logger     *slog.Logger
	transport  mailer.Transport
	renderer   mailer.Renderer
	templateFS fs.FS
}

// Option configures New and FromEnv.
type Option func(*options)

// WithLogger sets the mailer logger.
// If nil, the default no-op logger is kept.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTransport replaces the SMTP transport built from Config,
// e.g. with a resend, postmark or mailgun transport.
func WithTransport(t Transport) Option {
	return func(o *options) {
		if t != nil {
			o.transport = t
		}
	}
}

// WithRenderer sets the template renderer. It takes precedence over WithTemplateFS.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		if r != nil {
			o.renderer = r
		}
	}
}

// WithTemplateFS loads templates from fsys instead of Config.TemplateDir.
func WithTemplateFS(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.templateFS = fsys
		}
	}
}

// New creates a Mailer from cfg.
// Without WithTransport, messages go over SMTP using the account in cfg.
// Without WithRenderer, templates are loaded from cfg.TemplateDir; a missing
// directory yields a mailer whose templated sends fail with ErrTemplateNotFound.
func New(cfg Config, opts ...Option) (*Mailer, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if o.transport == nil {
		t, err := smtp.New(smtp.FromMailerConfig(cfg))
		if err != nil {
			return nil, err
		}
		o.transport = t
	}

	if o.renderer == nil {
		fsys := o.templateFS
		if fsys == nil {
			fsys = os.DirFS(cfg.TemplateDir)
		}
		r, err := mailer.NewRenderer(fsys, mailer.RendererConfig{DefaultLayout: cfg.DefaultLayout})
		if err != nil {
			return nil, err
		}
		o.renderer = r
	}

	mopts := []mailer.Option{mailer.WithRenderer(o.renderer)}
	if o.logger != nil {
		mopts = append(mopts, mailer.WithLogger(o.logger))
	}
	return mailer.New(cfg, o.transport, mopts...)
}

// FromEnv reads EnvConfig from the environment (and a .env file when present)
// and creates a Mailer logging to stdout. Options override the env-derived logger.
func FromEnv(opts ...Option) (*Mailer, error) {
	var cfg EnvConfig
	if err := config.Load(&cfg); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	opts = append([]Option{WithLogger(logger.NewWithConfig(os.Stdout, cfg.Log))}, opts...)
	return New(cfg.Mailer, opts...)
}

// MustFromEnv is like FromEnv but panics on error.
func MustFromEnv(opts ...Option) *Mailer {
	m, err := FromEnv(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// NewSendAgent wraps m in the deprecated flat-argument adapter.
func NewSendAgent(m *Mailer) *SendAgent {
	return mailer.NewSendAgent(m)
}
