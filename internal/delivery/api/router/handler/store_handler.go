package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StoreHandlerParams holds dependencies for StoreHandler, injected by Fx.
type StoreHandlerParams struct {
	fx.In

	StoreUC      usecase.StoreUsecase
	OnboardingUC usecase.OnboardingUsecase
	Logger       *slog.Logger
}

// StoreHandler serves public storefronts and merchant self-service.
type StoreHandler struct {
	storeUC      usecase.StoreUsecase
	onboardingUC usecase.OnboardingUsecase
	logger       *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler
func NewStoreHandler(params StoreHandlerParams) *StoreHandler {
	return &StoreHandler{
		storeUC:      params.StoreUC,
		onboardingUC: params.OnboardingUC,
		logger:       params.Logger,
	}
}

// GetBySlug returns an approved storefront.
func (h *StoreHandler) GetBySlug(c echo.Context) error {
	store, err := h.storeUC.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newStoreView(store))
}

// QRCode returns a PNG linking to the storefront.
func (h *StoreHandler) QRCode(c echo.Context) error {
	png, err := h.storeUC.StorefrontQR(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}

// CreateStore opens a store for the signed-in user.
func (h *StoreHandler) CreateStore(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req usecase.CreateStoreInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid store input")
	}

	store, err := h.onboardingUC.CreateStore(c.Request().Context(), subject, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newStoreView(store))
}

// ListMine returns the stores owned by the signed-in user.
func (h *StoreHandler) ListMine(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	stores, err := h.storeUC.ListMine(c.Request().Context(), subject)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newStoreViews(stores))
}
