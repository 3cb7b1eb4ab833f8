package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// DocumentUsecase accepts verification documents before an application exists.
type DocumentUsecase interface {
	Upload(ctx context.Context, upload *service.DocumentUpload) (string, error)
}
