package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tradewell/backoffice/internal/core/domain"
	"github.com/tradewell/backoffice/internal/core/ports"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

const (
	principalKey  = "principal"
	supersededKey = "session_superseded"
)

// Session resolves the request's session token into a principal and stores it
// in the request context. It never rejects by itself; route authorization is
// the policy middleware's job. A token displaced by a newer login is noted so
// the redirect can carry the expired indicator.
func Session(access ports.AccessService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token != "" {
				principal, err := access.Authenticate(c.Request().Context(), token)
				switch {
				case err == nil:
					c.Set(principalKey, principal)
				case errors.Is(err, domain.ErrSessionSuperseded):
					c.Set(supersededKey, true)
				}
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated principal attached to the request, or
// nil when the request carries no valid session.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

func sessionSuperseded(c echo.Context) bool {
	v, _ := c.Get(supersededKey).(bool)
	return v
}

// extractToken reads the session cookie, falling back to a bearer header for
// non-browser callers.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
