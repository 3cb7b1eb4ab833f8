package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ApproveOutput describes what approval provisioned. TemporaryPassword is set only
// when a new account was created; ReusedAccount is set when an existing user now owns the store.
type ApproveOutput struct {
	Application       *entity.BusinessApplication
	Store             *entity.Store
	User              *entity.User
	Verification      *entity.Verification
	TemporaryPassword string
	ReusedAccount     bool
}

// ProvisioningUsecase turns an approved application into a live tenant.
type ProvisioningUsecase interface {
	Approve(ctx context.Context, actor *entity.Subject, applicationID uuid.UUID) (*ApproveOutput, error)
}
