package context

import (
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

const (
	// KeySubject is the key for the authenticated subject in echo.Context.
	KeySubject ContextKey = "subject"

	// KeySessionIssuedAt is the key for the issue time of the presented session.
	KeySessionIssuedAt ContextKey = "session_issued_at"
)

// SetSubject stores the authenticated subject in echo.Context.
func SetSubject(c echo.Context, subject *entity.Subject) {
	c.Set(string(KeySubject), subject)
}

// GetSubject returns the authenticated subject, or false when the request is anonymous.
func GetSubject(c echo.Context) (*entity.Subject, bool) {
	subject, ok := c.Get(string(KeySubject)).(*entity.Subject)
	if !ok || subject == nil {
		return nil, false
	}

	return subject, true
}
