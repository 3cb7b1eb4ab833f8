package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrPlanNotFound           = errors.New("subscription plan not found")
	ErrRestrictedSlugNotFound = errors.New("restricted slug not found")
)

// ReferenceRepository reads categories and plans and manages the restricted slug list.
type ReferenceRepository interface {
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	FindPlanByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error)
	ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error)

	// IsRestricted reports whether word is on the restricted list.
	IsRestricted(ctx context.Context, word string) (bool, error)
	ListRestrictedSlugs(ctx context.Context) ([]*entity.RestrictedSlug, error)

	// CreateRestrictedSlug adds a word. A duplicate yields domainerrors.ErrRestrictedSlugExists.
	CreateRestrictedSlug(ctx context.Context, slug *entity.RestrictedSlug) error
	DeleteRestrictedSlug(ctx context.Context, word string) error
}
