// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account: a shopper, or a merchant that owns stores.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // Lower-cased login email, unique across users.
	PasswordHash string    // bcrypt hash; empty until the account is activated.
	DisplayName  string    // The user's display name.
	Role         Role      // RoleCustomer or RoleMerchant.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Subject returns the session subject for the user.
func (u *User) Subject() *Subject {
	return &Subject{Kind: SubjectKindUser, ID: u.ID, Role: u.Role}
}
