package service

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueSession signs a session token for subject.
	IssueSession(subject *entity.Subject) (token string, expiresAt time.Time, err error)

	// ReissueSession signs a fresh session for subject that keeps an existing expiry,
	// so refreshing never extends a session.
	ReissueSession(subject *entity.Subject, expiresAt time.Time) (string, error)

	// ValidateSession verifies signature, algorithm, token type and expiry. Any failure
	// yields domainerrors.ErrSessionInvalid and no claims.
	ValidateSession(token string) (*entity.SessionClaims, error)

	// SessionDuration returns the configured session lifetime.
	SessionDuration() time.Duration

	// IssuePasswordSetup signs a single-use password setup token bound to the current
	// password hash of the user.
	IssuePasswordSetup(userID uuid.UUID, email, passwordHash string) (string, error)

	// ValidatePasswordSetup verifies a password setup token. Any failure yields
	// domainerrors.ErrSetupTokenInvalid.
	ValidatePasswordSetup(token string) (*entity.PasswordSetupClaims, error)

	// PasswordFingerprint derives the value embedded in setup tokens from a password hash.
	PasswordFingerprint(passwordHash string) string
}
