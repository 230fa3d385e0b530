package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tradewell/backoffice/internal/core/domain"
	"github.com/tradewell/backoffice/internal/core/ports"
)

// stubAccess resolves fixed tokens: "good" authenticates, "stale" is a
// superseded session, everything else is unusable.
type stubAccess struct{}

func (stubAccess) Login(context.Context, ports.LoginInput) (string, *domain.Principal, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (stubAccess) Authenticate(_ context.Context, token string) (*domain.Principal, error) {
	switch token {
	case "good":
		return &domain.Principal{AccountID: "acc-1", Username: "alice", Role: domain.RoleUser, SessionID: "sid-1"}, nil
	case "stale":
		return nil, domain.ErrSessionSuperseded
	default:
		return nil, domain.ErrUnauthenticated
	}
}

func (stubAccess) Logout(context.Context, *domain.Principal) {}

func runSession(t *testing.T, req *http.Request) echo.Context {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(stubAccess{})
	if err := mw(func(c echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("session middleware error: %v", err)
	}
	return c
}

func TestSession_CookieToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})

	c := runSession(t, req)
	p := Principal(c)
	if p == nil || p.Username != "alice" {
		t.Fatalf("expected principal from cookie, got %+v", p)
	}
}

func TestSession_BearerFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")

	c := runSession(t, req)
	if Principal(c) == nil {
		t.Fatalf("expected principal from bearer token")
	}
}

func TestSession_NoToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	c := runSession(t, req)
	if Principal(c) != nil {
		t.Fatalf("expected no principal without a token")
	}
	if sessionSuperseded(c) {
		t.Fatalf("missing token is not a superseded session")
	}
}

func TestSession_SupersededTokenFlagged(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})

	c := runSession(t, req)
	if Principal(c) != nil {
		t.Fatalf("superseded session must not yield a principal")
	}
	if !sessionSuperseded(c) {
		t.Fatalf("superseded session should be flagged for the redirect")
	}
}
