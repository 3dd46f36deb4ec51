package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email string `validate:"required,email"`
	Age   int    `validate:"min=18"`
}

func TestParseError(t *testing.T) {
	err := validator.New().Struct(signup{Email: "nope", Age: 3})
	require.Error(t, err)

	parsed := ParseError(err)
	require.Equal(t, "Email must be a valid email address", parsed["Email"])
	require.Equal(t, "Age must be at least 18", parsed["Age"])
	require.Equal(t, "Age must be at least 18; Email must be a valid email address", Message(err))
}

func TestParseError_NonValidator(t *testing.T) {
	require.Equal(t, map[string]string{"error": "unexpected EOF"}, ParseError(errors.New("unexpected EOF")))
	require.Equal(t, "Invalid request payload", Message(nil))
}
