package resend

// Config holds Resend credentials and the default sender.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_SENDER_EMAIL" envDefault:"onboarding@resend.dev"`
	SenderName  string `env:"RESEND_SENDER_NAME"`
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
