package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tradewell/backoffice/internal/core/domain"
	"github.com/tradewell/backoffice/internal/core/service"
)

func policyContext(principal *domain.Principal, superseded bool) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalKey, principal)
	}
	if superseded {
		c.Set(supersededKey, true)
	}
	return c, rec
}

func TestAuthorize_AllowsAuthenticated(t *testing.T) {
	c, rec := policyContext(&domain.Principal{AccountID: "acc-1", Role: domain.RoleUser}, false)

	called := false
	mw := Authorize(service.RouteAuthenticated)
	if err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_RedirectsUnauthenticated(t *testing.T) {
	c, rec := policyContext(nil, false)

	mw := Authorize(service.RouteAuthenticated)
	if err := mw(func(c echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestAuthorize_SupersededRedirectsWithExpiredFlag(t *testing.T) {
	c, rec := policyContext(nil, true)

	mw := Authorize(service.RouteAuthenticated)
	if err := mw(func(c echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login?expired=1" {
		t.Fatalf("expected expired login redirect, got %q", loc)
	}
}

func TestAuthorize_ForbidsWrongRole(t *testing.T) {
	c, _ := policyContext(&domain.Principal{AccountID: "acc-1", Role: domain.RoleUser}, false)

	mw := Authorize(service.RouteAdmin)
	err := mw(func(c echo.Context) error { return nil })(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER on admin route, got %v", err)
	}
}

func TestAuthorize_AdminAllowed(t *testing.T) {
	c, rec := policyContext(&domain.Principal{AccountID: "acc-1", Role: domain.RoleAdmin}, false)

	mw := Authorize(service.RouteAdmin)
	if err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
