package contact

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxNameLength    = 60
	MaxEmailLength   = 254
	MaxMessageLength = 5000
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Input is the raw form payload as posted by the browser.
type Input struct {
	FirstName string `json:"firstName" validate:"required,max=60"`
	LastName  string `json:"lastName" validate:"required,max=60"`
	Email     string `json:"email" validate:"required,max=254,email"`
	Message   string `json:"message" validate:"required,max=5000"`
	Honeypot  string `json:"honeypot,omitempty"`
}

// HoneypotTripped reports whether the hidden field was filled in.
func (in Input) HoneypotTripped() bool {
	return strings.TrimSpace(in.Honeypot) != ""
}

// FieldError describes one invalid field, keyed by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every invalid field of a rejected Input.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + " " + fe.Message
	}
	return "contact: invalid submission: " + strings.Join(parts, "; ")
}

// Fields returns the names of the invalid fields.
func (v ValidationErrors) Fields() []string {
	names := make([]string, len(v))
	for i, fe := range v {
		names[i] = fe.Field
	}
	return names
}

// Submission is an Input that passed validation, with surrounding whitespace
// trimmed. The remaining bytes are kept as submitted. It is read-only.
type Submission struct {
	firstName string
	lastName  string
	email     string
	message   string
}

func (s *Submission) FirstName() string { return s.firstName }
func (s *Submission) LastName() string  { return s.lastName }
func (s *Submission) Email() string     { return s.email }
func (s *Submission) Message() string   { return s.message }

// FullName joins the first and last name.
func (s *Submission) FullName() string { return s.firstName + " " + s.lastName }

// Validate checks every field of in. On failure the error is a
// ValidationErrors holding all problems, in field order.
//
// Length limits count characters of the NFC form, so a decomposed "é" counts
// once even though the submission keeps both code points.
func Validate(in Input) (*Submission, error) {
	trimmed := Input{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Message:   strings.TrimSpace(in.Message),
	}
	composed := Input{
		FirstName: norm.NFC.String(trimmed.FirstName),
		LastName:  norm.NFC.String(trimmed.LastName),
		Email:     norm.NFC.String(trimmed.Email),
		Message:   norm.NFC.String(trimmed.Message),
	}

	if err := validate.Struct(composed); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		out := make(ValidationErrors, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		return nil, out
	}

	return &Submission{
		firstName: trimmed.FirstName,
		lastName:  trimmed.LastName,
		email:     trimmed.Email,
		message:   trimmed.Message,
	}, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
