package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateStoreInput is the self-serve onboarding request.
type CreateStoreInput struct {
	Name           string    `json:"name" validate:"required,max=120"`
	Description    string    `json:"description" validate:"max=2000"`
	CategoryID     uuid.UUID `json:"category_id" validate:"required"`
	SubscriptionID uuid.UUID `json:"subscription_id" validate:"required"`
	PhoneNumber    string    `json:"phone_number" validate:"max=32"`
	ThemeColor     string    `json:"theme_color" validate:"omitempty,hexcolor"`
}

// OnboardingUsecase lets a signed-in user open a store without an application.
type OnboardingUsecase interface {
	CreateStore(ctx context.Context, actor *entity.Subject, input *CreateStoreInput) (*entity.Store, error)
}

// StoreUsecase serves storefront lookups.
type StoreUsecase interface {
	// GetBySlug returns approved stores only.
	GetBySlug(ctx context.Context, slug string) (*entity.Store, error)
	ListMine(ctx context.Context, actor *entity.Subject) ([]*entity.Store, error)
	// StorefrontQR returns a PNG pointing at the public storefront.
	StorefrontQR(ctx context.Context, slug string) ([]byte, error)
}
