package contact

import (
	"errors"
)

// Config holds the contact-form settings.
type Config struct {
	OperatorEmail       string `env:"CONTACT_OPERATOR_EMAIL"`
	SiteName            string `env:"SITE_NAME" envDefault:"my website"`
	SiteURL             string `env:"SITE_URL"`
	ConfirmationEnabled bool   `env:"CONTACT_CONFIRMATION_ENABLED" envDefault:"true"`
}

// Validate checks the operator address.
func (c Config) Validate() error {
	if c.OperatorEmail == "" {
		return ErrNoOperatorAddress
	}
	if err := validate.Var(c.OperatorEmail, "email"); err != nil {
		return errors.Join(ErrInvalidOperator, err)
	}
	return nil
}
