package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SlugCheckResult answers whether a slug may be requested.
type SlugCheckResult struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AddRestrictedSlugInput reserves a word.
type AddRestrictedSlugInput struct {
	Word   string `json:"word" validate:"required,max=63"`
	Reason string `json:"reason" validate:"max=200"`
}

// ReferenceUsecase exposes catalog data and restricted slugs.
type ReferenceUsecase interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error)
	CheckSlug(ctx context.Context, slug string) (*SlugCheckResult, error)
	ListRestrictedSlugs(ctx context.Context, actor *entity.Subject) ([]*entity.RestrictedSlug, error)
	AddRestrictedSlug(ctx context.Context, actor *entity.Subject, input *AddRestrictedSlugInput) (*entity.RestrictedSlug, error)
	RemoveRestrictedSlug(ctx context.Context, actor *entity.Subject, word string) error
}
