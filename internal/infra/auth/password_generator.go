package auth

import (
	"crypto/rand"
	"math/big"
	"strings"

	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const (
	temporaryPasswordLength = 16
	recoveryCodeGroups      = 4
	recoveryCodeGroupSize   = 4

	lowerChars   = "abcdefghijkmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars   = "23456789"
	specialChars = "!@#$%^&*-_=+?"
	// Crockford-style alphabet without I, L, O, U.
	recoveryChars = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

type randomPasswordGenerator struct{}

// NewPasswordGenerator returns a generator backed by crypto/rand.
func NewPasswordGenerator() service.PasswordGenerator {
	return &randomPasswordGenerator{}
}

// Generate returns a password with at least one character from every class.
func (g *randomPasswordGenerator) Generate() (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, specialChars}
	all := strings.Join(classes, "")

	buf := make([]byte, 0, temporaryPasswordLength)
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for len(buf) < temporaryPasswordLength {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// Fisher-Yates so the guaranteed classes are not always in front.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", errors.Wrap(err, "shuffle password")
		}
		buf[i], buf[j.Int64()] = buf[j.Int64()], buf[i]
	}

	return string(buf), nil
}

// GenerateRecoveryCode returns a code like 7KQ2-M9XD-4TRA-H3ZP.
func (g *randomPasswordGenerator) GenerateRecoveryCode() (string, error) {
	groups := make([]string, recoveryCodeGroups)
	for i := range groups {
		var group strings.Builder
		for range recoveryCodeGroupSize {
			c, err := randomChar(recoveryChars)
			if err != nil {
				return "", err
			}
			group.WriteByte(c)
		}
		groups[i] = group.String()
	}

	return strings.Join(groups, "-"), nil
}

func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, errors.Wrap(err, "read random")
	}

	return alphabet[n.Int64()], nil
}
