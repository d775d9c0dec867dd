package contactd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/pagecraft/contactd/handlers"
	"github.com/pagecraft/contactd/pkg/contact"
	"github.com/pagecraft/contactd/pkg/logger"
	"github.com/pagecraft/contactd/pkg/mailer"
	"github.com/pagecraft/contactd/pkg/mailer/resend"
	"github.com/pagecraft/contactd/pkg/ratelimit"
	"github.com/pagecraft/contactd/pkg/redis"
)

// HTTPConfig holds the server settings.
type HTTPConfig struct {
	Address            string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	RequestTimeout     time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"15s"`
	BodyLimit          int64         `env:"HTTP_BODY_LIMIT" envDefault:"65536"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Config is the complete service configuration, read from the environment.
type Config struct {
	HTTP      HTTPConfig
	Endpoint  handlers.ContactConfig
	Contact   contact.Config
	RateLimit ratelimit.Config
	Redis     redis.Config `envPrefix:"RATE_LIMIT_REDIS_"`
	Mailer    mailer.Config
	Resend    resend.Config
	Log       logger.Config
	Sentry    logger.SentryConfig
}

// Load reads the given dotenv files (".env" when none are named) and then
// parses the environment into a Config. Missing dotenv files are ignored;
// variables already set in the environment win over file values.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if err := c.Contact.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.HTTP.BodyLimit <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_BODY_LIMIT must be positive, got %d", c.HTTP.BodyLimit))
	}
	if c.RateLimit.MaxRequests <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be positive, got %d", c.RateLimit.MaxRequests))
	}
	if c.RateLimit.WindowMS <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW_MS must be positive, got %d", c.RateLimit.WindowMS))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
