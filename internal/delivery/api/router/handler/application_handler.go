package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ApplicationHandlerParams holds dependencies for ApplicationHandler, injected by Fx.
type ApplicationHandlerParams struct {
	fx.In

	ApplicationUC  usecase.ApplicationUsecase
	ProvisioningUC usecase.ProvisioningUsecase
	Logger         *slog.Logger
}

// ApplicationHandler serves public submission and the admin review queue.
type ApplicationHandler struct {
	applicationUC  usecase.ApplicationUsecase
	provisioningUC usecase.ProvisioningUsecase
	logger         *slog.Logger
}

// NewApplicationHandler is the constructor for ApplicationHandler
func NewApplicationHandler(params ApplicationHandlerParams) *ApplicationHandler {
	return &ApplicationHandler{
		applicationUC:  params.ApplicationUC,
		provisioningUC: params.ProvisioningUC,
		logger:         params.Logger,
	}
}

// Submit records a new business application.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req usecase.SubmitApplicationInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid application input")
	}

	app, err := h.applicationUC.Submit(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &submittedApplicationView{
		ID:          app.ID,
		DesiredSlug: app.DesiredSlug,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
	})
}

// List returns applications, optionally filtered by ?status=, paged by ?limit= and ?offset=.
func (h *ApplicationHandler) List(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.ListApplicationsInput{Status: entity.ApplicationStatus(c.QueryParam("status"))}
	if input.Limit, err = intQuery(c, "limit"); err != nil {
		return response.BindingError(c, "limit must be an integer")
	}
	if input.Offset, err = intQuery(c, "offset"); err != nil {
		return response.BindingError(c, "offset must be an integer")
	}

	apps, err := h.applicationUC.List(c.Request().Context(), subject, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]*applicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, newApplicationView(app))
	}

	return response.Success(c, http.StatusOK, views)
}

// Get returns one application.
func (h *ApplicationHandler) Get(c echo.Context) error {
	subject, id, ok, err := h.subjectAndID(c)
	if !ok {
		return err
	}

	app, err := h.applicationUC.Get(c.Request().Context(), subject, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newApplicationView(app))
}

// Approve provisions the applicant's account and store.
func (h *ApplicationHandler) Approve(c echo.Context) error {
	subject, id, ok, err := h.subjectAndID(c)
	if !ok {
		return err
	}

	out, err := h.provisioningUC.Approve(c.Request().Context(), subject, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newApprovalView(out))
}

// Reject closes an application with an optional reason.
func (h *ApplicationHandler) Reject(c echo.Context) error {
	subject, id, ok, err := h.subjectAndID(c)
	if !ok {
		return err
	}

	// The body is optional; echo skips binding an empty one.
	var req usecase.RejectApplicationInput
	if bindErr := c.Bind(&req); bindErr != nil {
		return response.BindingError(c, "Invalid reject input")
	}

	app, err := h.applicationUC.Reject(c.Request().Context(), subject, id, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newApplicationView(app))
}

// Purge deletes an approved or rejected application.
func (h *ApplicationHandler) Purge(c echo.Context) error {
	subject, id, ok, err := h.subjectAndID(c)
	if !ok {
		return err
	}

	if err := h.applicationUC.Purge(c.Request().Context(), subject, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// subjectAndID returns ok=false once a response has already been written.
func (h *ApplicationHandler) subjectAndID(c echo.Context) (*entity.Subject, uuid.UUID, bool, error) {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return nil, uuid.Nil, false, response.HandleAppError(c, err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, uuid.Nil, false, response.BindingError(c, "Invalid application ID")
	}

	return subject, id, true, nil
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	return strconv.Atoi(raw)
}
