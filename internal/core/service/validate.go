package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tradewell/backoffice/internal/core/domain"
	"github.com/tradewell/backoffice/internal/core/ports"
)

// Error codes and messages shared by registration and account management.
const (
	codeRequired         = "required"
	codeInvalid          = "invalid"
	codeUsernameTaken    = "username_taken"
	codePasswordPolicy   = "password_policy"
	codePasswordMismatch = "password_mismatch"

	msgUsernameTaken     = "this username is already used"
	msgPasswordPolicy    = "password must be at least 8 characters long and contain an uppercase letter, a lowercase letter, a digit and a symbol"
	msgPasswordMismatch  = "passwords do not match"
	msgPasswordMandatory = "password is mandatory"
)

var validate = validator.New()

// checkStruct runs go-playground struct-tag validation over a form and folds
// the result into a ValidationOutcome, so mandatory-field failures aggregate
// with the business-rule checks instead of aborting the request early.
func checkStruct(v any) domain.ValidationOutcome {
	var outcome domain.ValidationOutcome

	err := validate.Struct(v)
	if err == nil {
		return outcome
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		outcome.Reject("", codeInvalid, "invalid input")
		return outcome
	}

	for _, fe := range ve {
		field := formField(fe.Field())
		switch fe.Tag() {
		case "required":
			outcome.Reject(field, codeRequired, field+" is mandatory")
		case "oneof":
			outcome.Reject(field, codeInvalid, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			outcome.Reject(field, fe.Tag(), fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
		}
	}
	return outcome
}

// formField lowers the first rune of a struct field name so errors carry the
// submitted form field name (FullName -> fullName).
func formField(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// checkUsernameFree rejects the username field when an account already holds
// the name. A directory failure is a storage problem, not a client one, and is
// returned as an error.
func checkUsernameFree(ctx context.Context, directory ports.AccountDirectory, username string) (domain.ValidationOutcome, error) {
	var outcome domain.ValidationOutcome
	if username == "" {
		return outcome, nil
	}

	_, err := directory.FindByUsername(ctx, username)
	switch {
	case err == nil:
		outcome.Reject("username", codeUsernameTaken, msgUsernameTaken)
	case errors.Is(err, domain.ErrAccountNotFound):
		// free
	default:
		return outcome, fmt.Errorf("check username: %w", err)
	}
	return outcome, nil
}

// checkPasswordStrength rejects the password field when the password fails the
// strength policy.
func checkPasswordStrength(password string) domain.ValidationOutcome {
	var outcome domain.ValidationOutcome
	if !domain.IsPasswordStrong(password) {
		outcome.Reject("password", codePasswordPolicy, msgPasswordPolicy)
	}
	return outcome
}

// checkConfirmation rejects both password fields when the confirmation does
// not match, so the form can flag the pair together.
func checkConfirmation(password, confirmation string) domain.ValidationOutcome {
	var outcome domain.ValidationOutcome
	if !domain.PasswordsMatch(password, confirmation) {
		outcome.Reject("password", codePasswordMismatch, msgPasswordMismatch)
		outcome.Reject("confirmPassword", codePasswordMismatch, msgPasswordMismatch)
	}
	return outcome
}
