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

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository is the constructor for referenceRepository.
func NewReferenceRepository(db *gorm.DB) repository.ReferenceRepository {
	return &referenceRepository{db: db}
}

func (repo *referenceRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *referenceRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var models []model.CategoryModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(models))
	for i := range models {
		categories = append(categories, toCategoryDomain(&models[i]))
	}

	return categories, nil
}

func (repo *referenceRepository) FindPlanByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error) {
	var planM model.SubscriptionPlanModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&planM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlanNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription plan")
	}

	return toPlanDomain(&planM), nil
}

func (repo *referenceRepository) ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	var models []model.SubscriptionPlanModel
	if err := repo.db.WithContext(ctx).Order("price_cents ASC, name ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list subscription plans")
	}

	plans := make([]*entity.SubscriptionPlan, 0, len(models))
	for i := range models {
		plans = append(plans, toPlanDomain(&models[i]))
	}

	return plans, nil
}

func (repo *referenceRepository) IsRestricted(ctx context.Context, word string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.RestrictedSlugModel{}).Where("word = ?", word).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check restricted slug")
	}

	return count > 0, nil
}

func (repo *referenceRepository) ListRestrictedSlugs(ctx context.Context) ([]*entity.RestrictedSlug, error) {
	var models []model.RestrictedSlugModel
	if err := repo.db.WithContext(ctx).Order("word ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list restricted slugs")
	}

	words := make([]*entity.RestrictedSlug, 0, len(models))
	for i := range models {
		words = append(words, &entity.RestrictedSlug{
			ID:        models[i].ID,
			Word:      models[i].Word,
			Reason:    models[i].Reason,
			CreatedAt: models[i].CreatedAt,
		})
	}

	return words, nil
}

func (repo *referenceRepository) CreateRestrictedSlug(ctx context.Context, restricted *entity.RestrictedSlug) error {
	restrictedM := &model.RestrictedSlugModel{
		ID:     restricted.ID,
		Word:   restricted.Word,
		Reason: restricted.Reason,
	}

	if err := repo.db.WithContext(ctx).Create(restrictedM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRestrictedSlugExists.WithDetails(restricted.Word)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create restricted slug")
	}

	restricted.ID = restrictedM.ID
	restricted.CreatedAt = restrictedM.CreatedAt

	return nil
}

func (repo *referenceRepository) DeleteRestrictedSlug(ctx context.Context, word string) error {
	result := repo.db.WithContext(ctx).Where("word = ?", word).Delete(&model.RestrictedSlugModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete restricted slug")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRestrictedSlugNotFound
	}

	return nil
}

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	return &entity.Category{ID: data.ID, Slug: data.Slug, Name: data.Name}
}

func toPlanDomain(data *model.SubscriptionPlanModel) *entity.SubscriptionPlan {
	return &entity.SubscriptionPlan{
		ID:           data.ID,
		Slug:         data.Slug,
		Name:         data.Name,
		PriceCents:   data.PriceCents,
		Features:     []string(data.Features),
		ProductLimit: data.ProductLimit,
		ServiceLimit: data.ServiceLimit,
		BookingLimit: data.BookingLimit,
	}
}
