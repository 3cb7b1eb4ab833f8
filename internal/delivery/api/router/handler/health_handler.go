package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	DB     *gorm.DB
	Logger *slog.Logger
}

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{db: params.DB, logger: params.Logger}
}

type healthView struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Check pings the primary database.
func (h *HealthHandler) Check(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}

	if err != nil {
		h.logger.Warn("Health check failed", slog.Any("error", err))

		return response.Success(c, http.StatusServiceUnavailable, &healthView{Status: "degraded", Database: "unreachable"})
	}

	return response.Success(c, http.StatusOK, &healthView{Status: "ok", Database: "ok"})
}
