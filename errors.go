package contactd

import "errors"

// ErrInvalidConfig is joined with every configuration error.
var ErrInvalidConfig = errors.New("contactd: invalid configuration")
