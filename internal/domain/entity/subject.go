package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subject is the authenticated principal carried by a session: either a storefront
// user or a platform admin, never both.
type Subject struct {
	Kind SubjectKind
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the subject was authenticated against the admin table.
func (s *Subject) IsAdmin() bool {
	return s != nil && s.Kind == SubjectKindAdmin
}

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	Subject   Subject
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PasswordSetupClaims is the verified content of a password-setup token.
type PasswordSetupClaims struct {
	UserID      uuid.UUID
	Email       string
	Fingerprint string // Derived from the password hash at issuance; a changed password voids the token.
	ExpiresAt   time.Time
}
