package smtp

import (
	"time"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// Config holds SMTP server settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string        `env:"SMTP_SERVER,required,notEmpty"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Username string        `env:"EMAIL,required,notEmpty"`
	Password string        `env:"EMAIL_PASSWORD,required,notEmpty"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// FromMailerConfig derives SMTP settings from the mailer account: the sender
// address doubles as the login name.
func FromMailerConfig(cfg mailer.Config) Config {
	return Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Email,
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
	}
}
