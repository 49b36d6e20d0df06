package postmark

// Config holds Postmark API credentials.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN,required,notEmpty"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
}
