package ports

import (
	"context"

	"github.com/tradewell/backoffice/internal/core/domain"
)

// RegisterInput is the self-service registration form.
type RegisterInput struct {
	FullName        string `form:"fullName" validate:"required"`
	Username        string `form:"username" validate:"required"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// AccountInput is the admin-facing create/update form. Role is supplied by the
// caller rather than fixed.
type AccountInput struct {
	FullName string `form:"fullName" validate:"required"`
	Username string `form:"username" validate:"required"`
	Password string `form:"password"`
	Role     string `form:"role" validate:"required,oneof=USER ADMIN"`
}

// RegistrationService creates self-registered accounts with the USER role.
type RegistrationService interface {
	// Register validates the whole form, aggregating every rule violation into
	// the outcome before deciding. A non-empty outcome means nothing was saved.
	Register(ctx context.Context, input RegisterInput) (domain.ValidationOutcome, error)
}

// AccountManagementService is the admin-facing account lifecycle.
type AccountManagementService interface {
	Create(ctx context.Context, input AccountInput) (domain.ValidationOutcome, error)
	Update(ctx context.Context, id string, input AccountInput) (domain.ValidationOutcome, error)
	// Delete removes an account. callerID is the acting principal's account id;
	// an account can never delete itself.
	Delete(ctx context.Context, id, callerID string) error
	// FindForEdit returns the account with the password field blanked.
	FindForEdit(ctx context.Context, id string) (domain.AccountView, error)
	List(ctx context.Context) ([]domain.AccountView, error)
}
