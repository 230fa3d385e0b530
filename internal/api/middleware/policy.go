package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tradewell/backoffice/internal/core/service"
)

// Authorize enforces a route class against the request's principal.
// Unauthenticated callers on protected routes are redirected to login (with
// an expired indicator when their session was displaced by a newer login);
// authenticated callers lacking the required role get a 403, never a redirect.
func Authorize(class service.RouteClass) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch service.Authorize(class, Principal(c)) {
			case service.Allow:
				return next(c)
			case service.Forbidden:
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			default:
				target := "/login"
				if sessionSuperseded(c) {
					target = "/login?expired=1"
				}
				return c.Redirect(http.StatusFound, target)
			}
		}
	}
}
