package validation

import (
	"testing"

	domainerrors "storefront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string   `json:"email" validate:"required,email"`
	Name  string   `json:"name" validate:"required,max=5"`
	URLs  []string `json:"document_urls" validate:"max=2,dive,url"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(&sample{Email: "a@b.io", Name: "ok", URLs: []string{"https://x.io/a.pdf"}}))

	err := Struct(&sample{Email: "nope", Name: "toolongname", URLs: []string{"not a url"}})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "document_urls[0]: must be a valid URL; email: invalid email format; name: maximum length is 5", appErr.Details())
}

func TestValidator(t *testing.T) {
	assert.ErrorIs(t, Validator{}.Validate(&sample{}), domainerrors.ErrValidationFailed)
}
