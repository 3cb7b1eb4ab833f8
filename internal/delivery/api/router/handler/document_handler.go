package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const documentFormField = "file"

// DocumentHandlerParams holds dependencies for DocumentHandler, injected by Fx.
type DocumentHandlerParams struct {
	fx.In

	DocumentUC usecase.DocumentUsecase
	Logger     *slog.Logger
}

// DocumentHandler accepts verification documents ahead of an application.
type DocumentHandler struct {
	documentUC usecase.DocumentUsecase
	logger     *slog.Logger
}

// NewDocumentHandler is the constructor for DocumentHandler
func NewDocumentHandler(params DocumentHandlerParams) *DocumentHandler {
	return &DocumentHandler{
		documentUC: params.DocumentUC,
		logger:     params.Logger,
	}
}

type uploadedDocument struct {
	URL string `json:"url"`
}

// Upload stores the multipart "file" field and returns its URL for use in an application.
func (h *DocumentHandler) Upload(c echo.Context) error {
	header, err := c.FormFile(documentFormField)
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrDocumentRejected.WithDetails("multipart field \"file\" is required"))
	}

	file, err := header.Open()
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrDocumentRejected.WithDetails("file could not be read"))
	}
	defer file.Close()

	url, err := h.documentUC.Upload(c.Request().Context(), &service.DocumentUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &uploadedDocument{URL: url})
}
