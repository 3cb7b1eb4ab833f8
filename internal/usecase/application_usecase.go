// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitApplicationInput is what a prospective merchant sends to open a store.
type SubmitApplicationInput struct {
	ApplicantName  string    `json:"applicant_name" validate:"required,max=120"`
	Email          string    `json:"email" validate:"required,email,max=254"`
	Phone          string    `json:"phone" validate:"required,max=32"`
	StoreName      string    `json:"store_name" validate:"required,max=120"`
	DesiredSlug    string    `json:"desired_slug" validate:"required"`
	CategoryID     uuid.UUID `json:"category_id" validate:"required"`
	SubscriptionID uuid.UUID `json:"subscription_id" validate:"required"`
	DocumentURLs   []string  `json:"document_urls" validate:"max=10,dive,required,url"`
}

// ListApplicationsInput filters the admin application queue.
type ListApplicationsInput struct {
	Status entity.ApplicationStatus
	Limit  int
	Offset int
}

// RejectApplicationInput carries the optional reviewer note.
type RejectApplicationInput struct {
	Reason string `json:"reason" validate:"max=500"`
}

// ApplicationUsecase manages business applications up to the point of approval.
type ApplicationUsecase interface {
	Submit(ctx context.Context, input *SubmitApplicationInput) (*entity.BusinessApplication, error)
	List(ctx context.Context, actor *entity.Subject, input *ListApplicationsInput) ([]*entity.BusinessApplication, error)
	Get(ctx context.Context, actor *entity.Subject, id uuid.UUID) (*entity.BusinessApplication, error)
	Reject(ctx context.Context, actor *entity.Subject, id uuid.UUID, input *RejectApplicationInput) (*entity.BusinessApplication, error)
	// Purge hard-deletes an application that has reached a terminal state.
	Purge(ctx context.Context, actor *entity.Subject, id uuid.UUID) error
}
