package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// storeAssociations are never written through a store insert.
var storeAssociations = []string{"Owner", "Category", "Subscription"}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

// Create inserts a store. The slug unique index is the authoritative collision check.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Omit(storeAssociations...).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlugConflict.WithDetails(store.Slug)
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrConflict.WithDetails("store references missing owner, category or plan")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *storeRepository) FindBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	return repo.findOne(ctx, "slug = ?", slug)
}

func (repo *storeRepository) findOne(ctx context.Context, query string, arg any) (*entity.Store, error) {
	var storeM model.StoreModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return toStoreDomain(&storeM), nil
}

func (repo *storeRepository) ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Store, error) {
	var models []model.StoreModel
	if err := repo.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	stores := make([]*entity.Store, 0, len(models))
	for i := range models {
		stores = append(stores, toStoreDomain(&models[i]))
	}

	return stores, nil
}

// SlugExists reads from the primary to avoid replica lag hiding a fresh store.
func (repo *storeRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.StoreModel{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check slug")
	}

	return count > 0, nil
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository is the constructor for verificationRepository.
func NewVerificationRepository(db *gorm.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

func (repo *verificationRepository) Create(ctx context.Context, verification *entity.Verification) error {
	verificationM := &model.VerificationModel{
		ID:           verification.ID,
		StoreID:      verification.StoreID,
		DocumentURLs: datatypes.JSONSlice[string](verification.DocumentURLs),
		AdminNotes:   verification.AdminNotes,
	}

	if err := repo.db.WithContext(ctx).Omit("Store").Create(verificationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WithDetails("store already has a verification record")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create verification")
	}

	verification.ID = verificationM.ID
	verification.CreatedAt = verificationM.CreatedAt

	return nil
}

func (repo *verificationRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*entity.Verification, error) {
	var verificationM model.VerificationModel
	if err := repo.db.WithContext(ctx).Where("store_id = ?", storeID).First(&verificationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find verification")
	}

	return &entity.Verification{
		ID:           verificationM.ID,
		StoreID:      verificationM.StoreID,
		DocumentURLs: []string(verificationM.DocumentURLs),
		AdminNotes:   verificationM.AdminNotes,
		CreatedAt:    verificationM.CreatedAt,
	}, nil
}

func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:             data.ID,
		OwnerUserID:    data.OwnerUserID,
		Slug:           data.Slug,
		Name:           data.Name,
		Description:    data.Description,
		CategoryID:     data.CategoryID,
		SubscriptionID: data.SubscriptionID,
		Status:         entity.StoreStatus(data.Status),
		ThemeColor:     data.ThemeColor,
		LogoURL:        data.LogoURL,
		PhoneNumber:    data.PhoneNumber,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:             data.ID,
		OwnerUserID:    data.OwnerUserID,
		Slug:           data.Slug,
		Name:           data.Name,
		Description:    data.Description,
		CategoryID:     data.CategoryID,
		SubscriptionID: data.SubscriptionID,
		Status:         string(data.Status),
		ThemeColor:     data.ThemeColor,
		LogoURL:        data.LogoURL,
		PhoneNumber:    data.PhoneNumber,
	}
}
