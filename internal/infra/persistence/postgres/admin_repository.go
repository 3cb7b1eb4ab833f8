package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (repo *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *adminRepository) findOne(ctx context.Context, query string, arg any) (*entity.AdminUser, error) {
	var adminM model.AdminUserModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&adminM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAdminNotFound
		}

		return nil, errors.Wrap(err, "failed to find admin")
	}

	return toAdminDomain(&adminM), nil
}

// List returns every admin ordered by creation time.
func (repo *adminRepository) List(ctx context.Context) ([]*entity.AdminUser, error) {
	var models []model.AdminUserModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list admins")
	}

	admins := make([]*entity.AdminUser, 0, len(models))
	for i := range models {
		admins = append(admins, toAdminDomain(&models[i]))
	}

	return admins, nil
}

func (repo *adminRepository) Create(ctx context.Context, admin *entity.AdminUser) error {
	adminM := fromAdminDomain(admin)

	if err := repo.db.WithContext(ctx).Create(adminM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAdminAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create admin")
	}

	admin.ID = adminM.ID
	admin.CreatedAt = adminM.CreatedAt
	admin.UpdatedAt = adminM.UpdatedAt

	return nil
}

func (repo *adminRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AdminStatus) error {
	return repo.updateColumns(ctx, id, map[string]any{"status": string(status)})
}

func (repo *adminRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error {
	return repo.updateColumns(ctx, id, map[string]any{"role": role.String()})
}

func (repo *adminRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return repo.updateColumns(ctx, id, map[string]any{"password_hash": passwordHash})
}

func (repo *adminRepository) SetRecoveryCodeHash(ctx context.Context, id uuid.UUID, codeHash string) error {
	return repo.updateColumns(ctx, id, map[string]any{"recovery_code_hash": codeHash})
}

// ConsumeRecoveryCode clears the code with a compare-and-swap on the stored hash.
func (repo *adminRepository) ConsumeRecoveryCode(ctx context.Context, id uuid.UUID, codeHash string) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AdminUserModel{}).
		Where("id = ? AND recovery_code_hash = ?", id, codeHash).
		Update("recovery_code_hash", gorm.Expr("NULL"))
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume recovery code")
	}

	return result.RowsAffected == 1, nil
}

func (repo *adminRepository) updateColumns(ctx context.Context, id uuid.UUID, values map[string]any) error {
	result := repo.db.WithContext(ctx).Model(&model.AdminUserModel{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update admin")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAdminNotFound
	}

	return nil
}

func toAdminDomain(data *model.AdminUserModel) *entity.AdminUser {
	if data == nil {
		return nil
	}

	return &entity.AdminUser{
		ID:               data.ID,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		DisplayName:      data.DisplayName,
		Role:             entity.Role(data.Role),
		Status:           entity.AdminStatus(data.Status),
		RecoveryCodeHash: data.RecoveryCodeHash,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromAdminDomain(data *entity.AdminUser) *model.AdminUserModel {
	if data == nil {
		return nil
	}

	return &model.AdminUserModel{
		ID:               data.ID,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		DisplayName:      data.DisplayName,
		Role:             data.Role.String(),
		Status:           string(data.Status),
		RecoveryCodeHash: data.RecoveryCodeHash,
	}
}
