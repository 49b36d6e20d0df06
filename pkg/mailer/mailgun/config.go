package mailgun

// Config holds Mailgun API settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Domain string `env:"MAILGUN_DOMAIN,required,notEmpty"`
	APIKey string `env:"MAILGUN_API_KEY,required,notEmpty"`
	Region string `env:"MAILGUN_REGION" envDefault:"us"` // us or eu
}
