package contact

import "errors"

var (
	ErrNoOperatorAddress = errors.New("contact: operator email address is not configured")
	ErrInvalidOperator   = errors.New("contact: operator email address is invalid")
)
