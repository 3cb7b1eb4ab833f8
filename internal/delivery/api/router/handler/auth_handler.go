package handler

import (
	"log/slog"
	"net/http"

	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC  usecase.AuthUsecase
	AdminUC usecase.AdminUsecase
	Config  *config.Config
	Logger  *slog.Logger
}

// AuthHandler serves signup, login and credential recovery.
type AuthHandler struct {
	authUC  usecase.AuthUsecase
	adminUC usecase.AdminUsecase
	cfg     *config.Config
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:  params.AuthUC,
		adminUC: params.AdminUC,
		cfg:     params.Config,
		logger:  params.Logger,
	}
}

// Signup registers a customer and starts a session.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req usecase.SignupInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid signup input")
	}

	out, err := h.authUC.SignupCustomer(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.startSession(c, http.StatusCreated, out)
}

// Login authenticates a storefront user.
func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}

	out, err := h.authUC.LoginUser(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.startSession(c, http.StatusOK, out)
}

// AdminLogin authenticates a platform admin.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}

	out, err := h.authUC.LoginAdmin(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.startSession(c, http.StatusOK, out)
}

// Logout clears the session cookie. Tokens are stateless and stay valid until they expire.
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.cfg)

	return c.NoContent(http.StatusNoContent)
}

// SetupPassword activates a provisioned account with the emailed setup token.
func (h *AuthHandler) SetupPassword(c echo.Context) error {
	var req usecase.SetupPasswordInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid password setup input")
	}

	out, err := h.authUC.SetupPassword(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.startSession(c, http.StatusOK, out)
}

// RecoverAdmin resets an admin password with a one-time recovery code.
func (h *AuthHandler) RecoverAdmin(c echo.Context) error {
	var req usecase.RecoverAdminInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid recovery input")
	}

	if err := h.adminUC.Recover(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Me returns the profile of the current subject.
func (h *AuthHandler) Me(c echo.Context) error {
	subject, err := middleware.MustSubject(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.authUC.Profile(c.Request().Context(), subject)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

func (h *AuthHandler) startSession(c echo.Context, status int, out *usecase.SessionOutput) error {
	middleware.SetSessionCookie(c, h.cfg, out.Token, out.ExpiresAt)

	return response.Success(c, status, newSessionView(out))
}
