package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// documentService implements the DocumentUsecase interface.
type documentService struct {
	storage service.DocumentStorage
	logger  *slog.Logger
}

// DocumentServiceParams holds dependencies for DocumentService, injected by Fx.
type DocumentServiceParams struct {
	fx.In

	Storage service.DocumentStorage
	Logger  *slog.Logger
}

// NewDocumentService is the constructor for documentService.
func NewDocumentService(params DocumentServiceParams) usecase.DocumentUsecase {
	return &documentService{storage: params.Storage, logger: params.Logger}
}

func (srv *documentService) Upload(ctx context.Context, upload *service.DocumentUpload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", domainerrors.ErrDocumentRejected.WithDetails("file is required")
	}

	url, err := srv.storage.Upload(ctx, upload)
	if err != nil {
		return "", err
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Document uploaded",
		slog.String("filename", upload.Filename),
		slog.Int64("size", upload.Size),
	)

	return url, nil
}
