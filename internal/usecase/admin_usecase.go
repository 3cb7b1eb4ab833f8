package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAdminInput adds an administrator.
type CreateAdminInput struct {
	Email       string      `json:"email" validate:"required,email,max=254"`
	Password    string      `json:"password" validate:"required,max=128"`
	DisplayName string      `json:"display_name" validate:"required,max=120"`
	Role        entity.Role `json:"role" validate:"required,oneof=admin super_admin"`
}

// RecoverAdminInput resets a password with a one-time recovery code.
type RecoverAdminInput struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,max=128"`
}

// AdminUsecase manages the admin directory.
type AdminUsecase interface {
	List(ctx context.Context, actor *entity.Subject) ([]*entity.AdminUser, error)
	Create(ctx context.Context, actor *entity.Subject, input *CreateAdminInput) (*entity.AdminUser, error)
	UpdateStatus(ctx context.Context, actor *entity.Subject, id uuid.UUID, status entity.AdminStatus) (*entity.AdminUser, error)
	UpdateRole(ctx context.Context, actor *entity.Subject, id uuid.UUID, role entity.Role) (*entity.AdminUser, error)
	// IssueRecoveryCode returns the plaintext code once; only its hash is stored.
	IssueRecoveryCode(ctx context.Context, actor *entity.Subject, id uuid.UUID) (string, error)
	Recover(ctx context.Context, input *RecoverAdminInput) error
	// EnsureSuperAdmin creates the bootstrap super admin when no admin with that email exists.
	EnsureSuperAdmin(ctx context.Context, email, password, displayName string) (*entity.AdminUser, bool, error)
}
