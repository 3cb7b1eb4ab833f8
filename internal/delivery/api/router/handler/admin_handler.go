package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler serves the admin directory.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// UpdateAdminStatusRequest is the body of PATCH /admins/:id/status
type UpdateAdminStatusRequest struct {
	Status entity.AdminStatus `json:"status" validate:"required,oneof=active disabled suspended"`
}

// UpdateAdminRoleRequest is the body of PATCH /admins/:id/role
type UpdateAdminRoleRequest struct {
	Role entity.Role `json:"role" validate:"required,oneof=admin super_admin"`
}

type recoveryCodeView struct {
	Code string `json:"code"`
}

// List returns every admin.
func (h *AdminHandler) List(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	admins, err := h.adminUC.List(c.Request().Context(), subject)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAdminViews(admins))
}

// Create adds an admin.
func (h *AdminHandler) Create(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req usecase.CreateAdminInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid admin input")
	}

	admin, err := h.adminUC.Create(c.Request().Context(), subject, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAdminView(admin))
}

// UpdateStatus activates, disables or suspends an admin.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	subject, id, ok, err := h.subjectAndID(c)
	if !ok {
		return err
	}

	var req UpdateAdminStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	admin, err := h.adminUC.UpdateStatus(c.Request().Context(), subject, id, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAdminView(admin))
}

// UpdateRole promotes or demotes an admin.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	subject, id, ok, err := h.subjectAndID(c)
	if !ok {
		return err
	}

	var req UpdateAdminRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	admin, err := h.adminUC.UpdateRole(c.Request().Context(), subject, id, req.Role)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAdminView(admin))
}

// IssueRecoveryCode returns a one-time code. It is shown once and never stored in clear.
func (h *AdminHandler) IssueRecoveryCode(c echo.Context) error {
	subject, id, ok, err := h.subjectAndID(c)
	if !ok {
		return err
	}

	code, err := h.adminUC.IssueRecoveryCode(c.Request().Context(), subject, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return response.Success(c, http.StatusCreated, &recoveryCodeView{Code: code})
}

func (h *AdminHandler) subjectAndID(c echo.Context) (*entity.Subject, uuid.UUID, bool, error) {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return nil, uuid.Nil, false, response.HandleAppError(c, err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, uuid.Nil, false, response.BindingError(c, "Invalid admin ID")
	}

	return subject, id, true, nil
}
