package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrApplicationStatusChanged is returned when a conditional status update matched no row
	// because the application was no longer in the expected state.
	ErrApplicationStatusChanged = errors.New("application status changed concurrently")
)

// ApplicationFilter narrows a listing. Zero values mean no filter.
type ApplicationFilter struct {
	Status entity.ApplicationStatus
	Limit  int
	Offset int
}

// StatusTransition describes a conditional status flip.
type StatusTransition struct {
	From         entity.ApplicationStatus
	To           entity.ApplicationStatus
	ReviewedBy   uuid.UUID
	ReviewedAt   time.Time
	RejectReason *string
}

// ApplicationRepository persists business applications.
type ApplicationRepository interface {
	// Create persists a new application. A second pending application for the same email
	// yields domainerrors.ErrApplicationDuplicatePending.
	Create(ctx context.Context, app *entity.BusinessApplication) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.BusinessApplication, error)

	// FindByIDForUpdate loads the application and locks its row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.BusinessApplication, error)

	// FindPendingByEmail returns the pending application for email, or ErrApplicationNotFound.
	FindPendingByEmail(ctx context.Context, email string) (*entity.BusinessApplication, error)

	// List returns applications newest first.
	List(ctx context.Context, filter ApplicationFilter) ([]*entity.BusinessApplication, error)

	// TransitionStatus updates the row only while it is still in transition.From.
	// It returns ErrApplicationStatusChanged when no row matched.
	TransitionStatus(ctx context.Context, id uuid.UUID, transition StatusTransition) error

	// DeleteTerminal removes an application that is no longer pending.
	// It returns ErrApplicationStatusChanged when the row exists but is still pending.
	DeleteTerminal(ctx context.Context, id uuid.UUID) error
}
