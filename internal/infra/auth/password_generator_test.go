package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordGenerator_GeneratePassesDefaultPolicy(t *testing.T) {
	generator := NewPasswordGenerator()
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	seen := make(map[string]struct{})
	for range 50 {
		password, err := generator.Generate()
		require.NoError(t, err)
		assert.Len(t, password, temporaryPasswordLength)

		assert.NoError(t, hasher.ValidatePasswordStrength(password), password)

		seen[password] = struct{}{}
	}

	assert.Len(t, seen, 50)
}

func TestPasswordGenerator_RecoveryCodeFormat(t *testing.T) {
	code, err := NewPasswordGenerator().GenerateRecoveryCode()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{4}(-[0-9A-HJKMNP-TV-Z]{4}){3}$`), code)
}
