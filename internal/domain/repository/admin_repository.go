package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAdminNotFound is returned when an admin user is not found.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository persists platform administrators.
type AdminRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	List(ctx context.Context) ([]*entity.AdminUser, error)

	// Create persists a new admin. A duplicate email yields domainerrors.ErrAdminAlreadyExists.
	Create(ctx context.Context, admin *entity.AdminUser) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AdminStatus) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SetRecoveryCodeHash stores a new recovery code hash, replacing any outstanding one.
	SetRecoveryCodeHash(ctx context.Context, id uuid.UUID, codeHash string) error

	// ConsumeRecoveryCode clears the recovery code only if it still equals codeHash and
	// reports whether this call was the one that consumed it.
	ConsumeRecoveryCode(ctx context.Context, id uuid.UUID, codeHash string) (bool, error)
}
