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

// ReferenceHandlerParams holds dependencies for ReferenceHandler, injected by Fx.
type ReferenceHandlerParams struct {
	fx.In

	ReferenceUC usecase.ReferenceUsecase
	Logger      *slog.Logger
}

// ReferenceHandler serves catalog data, slug checks and restricted slugs.
type ReferenceHandler struct {
	referenceUC usecase.ReferenceUsecase
	logger      *slog.Logger
}

// NewReferenceHandler is the constructor for ReferenceHandler
func NewReferenceHandler(params ReferenceHandlerParams) *ReferenceHandler {
	return &ReferenceHandler{
		referenceUC: params.ReferenceUC,
		logger:      params.Logger,
	}
}

// ListCategories returns every store category.
func (h *ReferenceHandler) ListCategories(c echo.Context) error {
	categories, err := h.referenceUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]*categoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, &categoryView{ID: category.ID, Slug: category.Slug, Name: category.Name})
	}

	return response.Success(c, http.StatusOK, views)
}

// ListPlans returns every subscription plan.
func (h *ReferenceHandler) ListPlans(c echo.Context) error {
	plans, err := h.referenceUC.ListPlans(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]*planView, 0, len(plans))
	for _, plan := range plans {
		features := plan.Features
		if features == nil {
			features = []string{}
		}
		views = append(views, &planView{
			ID:           plan.ID,
			Slug:         plan.Slug,
			Name:         plan.Name,
			PriceCents:   plan.PriceCents,
			Features:     features,
			ProductLimit: plan.ProductLimit,
			ServiceLimit: plan.ServiceLimit,
			BookingLimit: plan.BookingLimit,
		})
	}

	return response.Success(c, http.StatusOK, views)
}

// CheckSlug reports whether ?slug= may be requested right now.
func (h *ReferenceHandler) CheckSlug(c echo.Context) error {
	result, err := h.referenceUC.CheckSlug(c.Request().Context(), c.QueryParam("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// ListRestrictedSlugs returns the reserved words.
func (h *ReferenceHandler) ListRestrictedSlugs(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	words, err := h.referenceUC.ListRestrictedSlugs(c.Request().Context(), subject)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]*restrictedSlugView, 0, len(words))
	for _, word := range words {
		views = append(views, newRestrictedSlugView(word))
	}

	return response.Success(c, http.StatusOK, views)
}

// AddRestrictedSlug reserves a word.
func (h *ReferenceHandler) AddRestrictedSlug(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req usecase.AddRestrictedSlugInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid restricted slug input")
	}

	word, err := h.referenceUC.AddRestrictedSlug(c.Request().Context(), subject, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newRestrictedSlugView(word))
}

// RemoveRestrictedSlug releases a word.
func (h *ReferenceHandler) RemoveRestrictedSlug(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.referenceUC.RemoveRestrictedSlug(c.Request().Context(), subject, c.Param("word")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
