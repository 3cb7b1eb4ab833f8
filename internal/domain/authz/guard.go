// Package authz enforces role requirements on authenticated subjects.
package authz

import (
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/google/uuid"
)

// RequireRole admits subject when it belongs to the same hierarchy as minimum and ranks
// at or above it. Customer/merchant and admin/super_admin never satisfy each other.
func RequireRole(subject *entity.Subject, minimum entity.Role) (*entity.Subject, error) {
	if subject == nil || subject.ID == uuid.Nil {
		return nil, domainerrors.ErrUnauthorized
	}

	if !subject.Role.IsValid() || subject.Role.Kind() != subject.Kind {
		return nil, domainerrors.ErrForbidden.WithDetails("unknown role")
	}

	if subject.Role.Kind() != minimum.Kind() || subject.Role.Rank() < minimum.Rank() {
		return nil, domainerrors.ErrForbidden.WithDetails("requires " + minimum.String())
	}

	return subject, nil
}

// RequireStatusChangeAllowed stops a super admin from leaving the active state on its own account.
func RequireStatusChangeAllowed(actor *entity.Subject, targetAdminID uuid.UUID, status entity.AdminStatus) error {
	if actor.IsAdmin() && actor.ID == targetAdminID && status != entity.AdminStatusActive {
		return domainerrors.ErrSelfLockout
	}

	return nil
}

// RequireRoleChangeAllowed stops a super admin from demoting its own account.
func RequireRoleChangeAllowed(actor *entity.Subject, targetAdminID uuid.UUID, role entity.Role) error {
	if actor.IsAdmin() && actor.ID == targetAdminID && role.Rank() < actor.Role.Rank() {
		return domainerrors.ErrSelfLockout
	}

	return nil
}
