package contact_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/contactd/pkg/contact"
)

func validInput() contact.Input {
	return contact.Input{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Message:   "Hi",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid input", func(t *testing.T) {
		t.Parallel()

		sub, err := contact.Validate(validInput())
		require.NoError(t, err)
		assert.Equal(t, "John", sub.FirstName())
		assert.Equal(t, "Doe", sub.LastName())
		assert.Equal(t, "John Doe", sub.FullName())
		assert.Equal(t, "john@example.com", sub.Email())
		assert.Equal(t, "Hi", sub.Message())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.FirstName = "  José "
		in.Message = "\n  Hello there  \n"

		sub, err := contact.Validate(in)
		require.NoError(t, err)
		assert.Equal(t, "José", sub.FirstName())
		assert.Equal(t, "Hello there", sub.Message())
	})

	t.Run("keeps decomposed text as submitted", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.FirstName = "Jose\u0301"
		in.Message = "cafe\u0301 au lait\r\nbye"

		sub, err := contact.Validate(in)
		require.NoError(t, err)
		assert.Equal(t, []byte("Jose\u0301"), []byte(sub.FirstName()))
		assert.Equal(t, "cafe\u0301 au lait\r\nbye", sub.Message())
		assert.NotEqual(t, "José", sub.FirstName())
	})

	t.Run("length counts composed characters", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.FirstName = strings.Repeat("e\u0301", contact.MaxNameLength)

		sub, err := contact.Validate(in)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("e\u0301", contact.MaxNameLength), sub.FirstName())
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.FirstName = strings.Repeat("é", contact.MaxNameLength)

		_, err := contact.Validate(in)
		require.NoError(t, err)
	})

	t.Run("reports every problem at once", func(t *testing.T) {
		t.Parallel()

		_, err := contact.Validate(contact.Input{Email: "not-an-email"})

		var verrs contact.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, contact.ValidationErrors{
			{Field: "firstName", Message: "is required"},
			{Field: "lastName", Message: "is required"},
			{Field: "email", Message: "must be a valid email address"},
			{Field: "message", Message: "is required"},
		}, verrs)
	})

	tests := []struct {
		name   string
		mutate func(*contact.Input)
		field  string
	}{
		{"whitespace-only first name", func(in *contact.Input) { in.FirstName = "   " }, "firstName"},
		{"first name too long", func(in *contact.Input) { in.FirstName = strings.Repeat("a", contact.MaxNameLength+1) }, "firstName"},
		{"last name too long", func(in *contact.Input) { in.LastName = strings.Repeat("b", contact.MaxNameLength+1) }, "lastName"},
		{"email without domain", func(in *contact.Input) { in.Email = "john@" }, "email"},
		{"email too long", func(in *contact.Input) {
			in.Email = strings.Repeat("a", 64) + "@" + strings.Repeat("b", contact.MaxEmailLength) + ".com"
		}, "email"},
		{"message too long", func(in *contact.Input) { in.Message = strings.Repeat("m", contact.MaxMessageLength+1) }, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput()
			tt.mutate(&in)

			sub, err := contact.Validate(in)
			require.Nil(t, sub)

			var verrs contact.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, []string{tt.field}, verrs.Fields())
		})
	}
}

func TestValidate_MaxLengthMessage(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Message = strings.Repeat("m", contact.MaxMessageLength)

	sub, err := contact.Validate(in)
	require.NoError(t, err)
	assert.Len(t, sub.Message(), contact.MaxMessageLength)
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	err := contact.ValidationErrors{{Field: "email", Message: "is required"}}
	assert.Equal(t, "contact: invalid submission: email is required", err.Error())
}

func TestInput_HoneypotTripped(t *testing.T) {
	t.Parallel()

	assert.False(t, contact.Input{}.HoneypotTripped())
	assert.False(t, contact.Input{Honeypot: " \t\n"}.HoneypotTripped())
	assert.True(t, contact.Input{Honeypot: "x"}.HoneypotTripped())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, contact.Config{}.Validate(), contact.ErrNoOperatorAddress)
	require.ErrorIs(t, contact.Config{OperatorEmail: "nope"}.Validate(), contact.ErrInvalidOperator)
	require.NoError(t, contact.Config{OperatorEmail: "me@example.com"}.Validate())
}
