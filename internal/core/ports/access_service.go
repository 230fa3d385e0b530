package ports

import (
	"context"

	"github.com/tradewell/backoffice/internal/core/domain"
)

// LoginInput is the login form.
type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// AccessService authenticates credentials and manages session tokens under
// the single-active-session policy.
type AccessService interface {
	// Login verifies credentials and establishes a new session, invalidating
	// any previously active session for the same account. It returns the
	// session token to hand to the client.
	Login(ctx context.Context, input LoginInput) (string, *domain.Principal, error)
	// Authenticate resolves a presented token to a principal. A token whose
	// session was displaced by a newer login fails with ErrSessionSuperseded.
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
	// Logout invalidates the principal's session immediately.
	Logout(ctx context.Context, principal *domain.Principal)
}
