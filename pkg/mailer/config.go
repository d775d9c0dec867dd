package mailer

// Config holds mailer configuration parsed with caarlos0/env.
type Config struct {
	FallbackSubject string  `env:"MAILER_FALLBACK_SUBJECT" envDefault:"New message"`
	DefaultLayout   string  `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
	RatePerSecond   float64 `env:"MAILER_RATE_PER_SECOND" envDefault:"2"`
	RateBurst       int     `env:"MAILER_RATE_BURST" envDefault:"2"`
}
