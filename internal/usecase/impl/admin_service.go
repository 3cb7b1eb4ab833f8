package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/authz"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	adminRepo repository.AdminRepository
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	passwords service.PasswordGenerator
	logger    *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	AdminRepo repository.AdminRepository
	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Passwords service.PasswordGenerator
	Logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		adminRepo: params.AdminRepo,
		txManager: params.TxManager,
		hasher:    params.Hasher,
		passwords: params.Passwords,
		logger:    params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) List(ctx context.Context, actor *entity.Subject) ([]*entity.AdminUser, error) {
	if _, err := requireAdmin(actor); err != nil {
		return nil, err
	}

	admins, err := srv.adminRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list admins")
	}

	return admins, nil
}

// Create adds an active administrator. Only super admins may do this.
func (srv *adminService) Create(ctx context.Context, actor *entity.Subject, input *usecase.CreateAdminInput) (*entity.AdminUser, error) {
	if _, err := authz.RequireRole(actor, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	admin, err := srv.createAdmin(ctx, util.NormalizeEmail(input.Email), input.Password, input.DisplayName, input.Role)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Admin created",
		slog.String("admin_id", admin.ID.String()),
		slog.String("role", admin.Role.String()),
		slog.String("created_by", actor.ID.String()),
	)

	return admin, nil
}

func (srv *adminService) createAdmin(ctx context.Context, email, password, displayName string, role entity.Role) (*entity.AdminUser, error) {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	admin := &entity.AdminUser{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         role,
		Status:       entity.AdminStatusActive,
	}
	if err := srv.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domainerrors.ErrAdminAlreadyExists) {
			return nil, domainerrors.ErrAdminAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create admin")
	}

	return admin, nil
}

// UpdateStatus changes whether an admin may log in. A super admin cannot take
// itself out of the active state.
func (srv *adminService) UpdateStatus(ctx context.Context, actor *entity.Subject, id uuid.UUID, status entity.AdminStatus) (*entity.AdminUser, error) {
	if _, err := authz.RequireRole(actor, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("status: must be one of active disabled suspended")
	}
	if err := authz.RequireStatusChangeAllowed(actor, id, status); err != nil {
		return nil, err
	}

	if err := srv.adminRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, srv.mapAdminError(err, "failed to update admin status")
	}

	srv.log(ctx).Info("Admin status updated",
		slog.String("admin_id", id.String()),
		slog.String("status", string(status)),
		slog.String("updated_by", actor.ID.String()),
	)

	return srv.find(ctx, id)
}

// UpdateRole moves an admin within the admin hierarchy. Self-demotion is refused.
func (srv *adminService) UpdateRole(ctx context.Context, actor *entity.Subject, id uuid.UUID, role entity.Role) (*entity.AdminUser, error) {
	if _, err := authz.RequireRole(actor, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if !role.IsAdminRole() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("role: must be one of admin super_admin")
	}
	if err := authz.RequireRoleChangeAllowed(actor, id, role); err != nil {
		return nil, err
	}

	if err := srv.adminRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, srv.mapAdminError(err, "failed to update admin role")
	}

	srv.log(ctx).Info("Admin role updated",
		slog.String("admin_id", id.String()),
		slog.String("role", role.String()),
		slog.String("updated_by", actor.ID.String()),
	)

	return srv.find(ctx, id)
}

// IssueRecoveryCode replaces any outstanding code for the target admin. Super admins may
// issue codes for anyone, other admins only for themselves.
func (srv *adminService) IssueRecoveryCode(ctx context.Context, actor *entity.Subject, id uuid.UUID) (string, error) {
	if _, err := requireAdmin(actor); err != nil {
		return "", err
	}
	if actor.Role != entity.RoleSuperAdmin && actor.ID != id {
		return "", domainerrors.ErrForbidden.WithDetails("requires super_admin")
	}

	if _, err := srv.find(ctx, id); err != nil {
		return "", err
	}

	code, err := srv.passwords.GenerateRecoveryCode()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate recovery code")
	}
	hash, err := srv.hasher.Hash(code)
	if err != nil {
		return "", err
	}

	if err := srv.adminRepo.SetRecoveryCodeHash(ctx, id, hash); err != nil {
		return "", srv.mapAdminError(err, "failed to store recovery code")
	}

	srv.log(ctx).Info("Recovery code issued",
		slog.String("admin_id", id.String()),
		slog.String("issued_by", actor.ID.String()),
	)

	return code, nil
}

// Recover resets an admin password with a recovery code. The code is consumed with a
// compare-and-swap on its hash, so two concurrent attempts cannot both succeed.
func (srv *adminService) Recover(ctx context.Context, input *usecase.RecoverAdminInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	email := util.NormalizeEmail(input.Email)

	var adminID uuid.UUID
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		admins := factory.NewAdminRepository()

		admin, err := admins.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrAdminNotFound) {
				return domainerrors.ErrRecoveryCodeInvalid
			}

			return errors.Wrap(err, "failed to find admin by email")
		}
		if admin.RecoveryCodeHash == nil || !srv.hasher.Check(input.Code, *admin.RecoveryCodeHash) {
			return domainerrors.ErrRecoveryCodeInvalid
		}

		consumed, err := admins.ConsumeRecoveryCode(ctx, admin.ID, *admin.RecoveryCodeHash)
		if err != nil {
			return errors.Wrap(err, "failed to consume recovery code")
		}
		if !consumed {
			return domainerrors.ErrRecoveryCodeInvalid
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return err
		}
		if err := admins.UpdatePasswordHash(ctx, admin.ID, hash); err != nil {
			return errors.Wrap(err, "failed to update admin password")
		}

		adminID = admin.ID

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Admin password recovered", slog.String("admin_id", adminID.String()))

	return nil
}

// EnsureSuperAdmin is used at bootstrap. It reports whether a new admin was created.
func (srv *adminService) EnsureSuperAdmin(ctx context.Context, email, password, displayName string) (*entity.AdminUser, bool, error) {
	email = util.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, domainerrors.ErrValidationFailed.WithDetails("bootstrap email and password are required")
	}

	existing, err := srv.adminRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, repository.ErrAdminNotFound):
		return nil, false, errors.Wrap(err, "failed to find admin by email")
	}

	if err := srv.hasher.ValidatePasswordStrength(password); err != nil {
		return nil, false, err
	}
	if displayName == "" {
		displayName = "Super Admin"
	}

	admin, err := srv.createAdmin(ctx, email, password, displayName, entity.RoleSuperAdmin)
	if err != nil {
		return nil, false, err
	}

	srv.log(ctx).Info("Bootstrap super admin created", slog.String("admin_id", admin.ID.String()))

	return admin, true, nil
}

func (srv *adminService) find(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	admin, err := srv.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.mapAdminError(err, "failed to find admin")
	}

	return admin, nil
}

func (srv *adminService) mapAdminError(err error, msg string) error {
	if errors.Is(err, repository.ErrAdminNotFound) {
		return domainerrors.ErrAdminNotFound
	}

	return errors.Wrap(err, msg)
}
