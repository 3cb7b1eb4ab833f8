package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdminStatus is the lifecycle state of an administrator account.
type AdminStatus string

const (
	AdminStatusActive    AdminStatus = "active"
	AdminStatusDisabled  AdminStatus = "disabled"
	AdminStatusSuspended AdminStatus = "suspended"
)

// IsValid checks if the status is a known value.
func (s AdminStatus) IsValid() bool {
	switch s {
	case AdminStatusActive, AdminStatusDisabled, AdminStatusSuspended:
		return true
	default:
		return false
	}
}

// AdminUser is a platform operator. Admins live in their own table and never share
// an identity with storefront users.
type AdminUser struct {
	ID               uuid.UUID   // The Global Unique Identifier (GUID) for the admin.
	Email            string      // Lower-cased login email, unique across admins.
	PasswordHash     string      // bcrypt hash of the admin password.
	DisplayName      string      // The admin's display name.
	Role             Role        // RoleAdmin or RoleSuperAdmin.
	Status           AdminStatus // Only active admins may log in.
	RecoveryCodeHash *string     // bcrypt hash of a one-time recovery code, nil when none is outstanding.
	CreatedAt        time.Time   // Timestamp of when this admin was created.
	UpdatedAt        time.Time   // Timestamp of the last modification.
}

// IsActive reports whether the admin may authenticate.
func (a *AdminUser) IsActive() bool {
	return a.Status == AdminStatusActive
}

// Subject returns the session subject for the admin.
func (a *AdminUser) Subject() *Subject {
	return &Subject{Kind: SubjectKindAdmin, ID: a.ID, Role: a.Role}
}
