package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/authz"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Config *config.Config
	Logger *slog.Logger
}

// AuthMiddleware resolves the session subject and enforces role requirements.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		authUC: params.AuthUC,
		cfg:    params.Config,
		logger: params.Logger,
		now:    time.Now,
	}
}

// Authenticate verifies the session cookie or bearer token. Sessions older than
// auth.roleRefreshInterval are re-read from storage so role changes and disabled
// admins take effect before the token expires.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		claims, err := m.authUC.CurrentSubject(ctx, SessionToken(c, m.cfg.Auth.CookieName))
		if err != nil {
			return response.HandleAppError(c, err)
		}

		subject := claims.Subject
		current := &subject

		interval := m.cfg.Auth.RoleRefreshInterval
		age := m.now().Sub(claims.IssuedAt)
		if interval > 0 && age >= interval {
			refreshed, refreshErr := m.authUC.RefreshSubject(ctx, claims)
			if refreshErr != nil {
				ClearSessionCookie(c, m.cfg)

				return response.HandleAppError(c, refreshErr)
			}

			if refreshed.Subject.Role != current.Role {
				deliverycontext.GetLoggerOrDefault(ctx, m.logger).Info("Session role refreshed",
					slog.String("subject_id", current.ID.String()),
					slog.String("from", current.Role.String()),
					slog.String("to", refreshed.Subject.Role.String()),
					slog.String("session_age", util.FormatDuration(age)),
				)
			}

			SetSessionCookie(c, m.cfg, refreshed.Token, refreshed.ExpiresAt)
			current = refreshed.Subject
		}

		deliverycontext.SetSubject(c, current)

		return next(c)
	}
}

// RequireRole rejects subjects outside minimum's hierarchy or ranked below it.
// It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireRole(minimum entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, _ := deliverycontext.GetSubject(c)
			if _, err := authz.RequireRole(subject, minimum); err != nil {
				return response.HandleAppError(c, err)
			}

			return next(c)
		}
	}
}

// GetSubject returns the subject set by Authenticate.
func GetSubject(c echo.Context) (*entity.Subject, bool) {
	return deliverycontext.GetSubject(c)
}

// MustSubject returns the subject or ErrUnauthorized for handlers mounted behind Authenticate.
func MustSubject(c echo.Context) (*entity.Subject, error) {
	subject, ok := deliverycontext.GetSubject(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return subject, nil
}

// SessionToken prefers the Authorization header and falls back to the session cookie.
func SessionToken(c echo.Context, cookieName string) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// SetSessionCookie stores a session token in an HttpOnly cookie.
func SetSessionCookie(c echo.Context, cfg *config.Config, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context, cfg *config.Config) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
