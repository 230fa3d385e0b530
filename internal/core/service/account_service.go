package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradewell/backoffice/internal/core/domain"
	"github.com/tradewell/backoffice/internal/core/ports"
)

// AccountService is the admin-facing account lifecycle: create, update,
// delete and the read shapes the management screens need.
type AccountService struct {
	directory ports.AccountDirectory
	hasher    ports.PasswordHasher
	logger    zerolog.Logger
}

func NewAccountService(directory ports.AccountDirectory, hasher ports.PasswordHasher, logger zerolog.Logger) *AccountService {
	return &AccountService{directory: directory, hasher: hasher, logger: logger}
}

// Create adds an account with the role supplied by the admin caller. A blank
// password is rejected outright; it also fails the strength policy, and both
// errors are reported, matching the aggregate-everything contract.
func (s *AccountService) Create(ctx context.Context, input ports.AccountInput) (domain.ValidationOutcome, error) {
	outcome := checkStruct(input)

	free, err := checkUsernameFree(ctx, s.directory, input.Username)
	if err != nil {
		return outcome, err
	}
	outcome.Merge(free)

	if input.Password == "" {
		outcome.Reject("password", codeRequired, msgPasswordMandatory)
	}
	outcome.Merge(checkPasswordStrength(input.Password))

	if outcome.HasErrors() {
		s.logger.Warn().Str("username", input.Username).Int("errors", len(outcome.Errors)).Msg("account creation rejected")
		return outcome, nil
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return outcome, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.directory.Save(ctx, account); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			outcome.Reject("username", codeUsernameTaken, msgUsernameTaken)
			return outcome, nil
		}
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create account")
		return outcome, fmt.Errorf("save account: %w", err)
	}

	s.logger.Info().Str("username", input.Username).Str("role", input.Role).Msg("account created")
	return outcome, nil
}

// Update overwrites an existing account. The uniqueness check only runs when
// the username actually changed, so resubmitting an unchanged form never
// collides with itself. A blank password means "no change requested" and the
// stored hash is kept as is.
func (s *AccountService) Update(ctx context.Context, id string, input ports.AccountInput) (domain.ValidationOutcome, error) {
	var outcome domain.ValidationOutcome

	account, err := s.directory.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return outcome, fmt.Errorf("account %s: %w", id, err)
		}
		return outcome, fmt.Errorf("load account %s: %w", id, err)
	}

	outcome = checkStruct(input)

	if input.Username != account.Username {
		free, err := checkUsernameFree(ctx, s.directory, input.Username)
		if err != nil {
			return outcome, err
		}
		outcome.Merge(free)
	}

	if input.Password != "" {
		outcome.Merge(checkPasswordStrength(input.Password))
	}

	if outcome.HasErrors() {
		s.logger.Warn().Str("id", id).Int("errors", len(outcome.Errors)).Msg("account update rejected")
		return outcome, nil
	}

	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return outcome, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hash
	}

	account.FullName = input.FullName
	account.Username = input.Username
	account.Role = input.Role
	account.UpdatedAt = time.Now().UTC()

	if _, err := s.directory.Save(ctx, account); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			outcome.Reject("username", codeUsernameTaken, msgUsernameTaken)
			return outcome, nil
		}
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update account")
		return outcome, fmt.Errorf("save account: %w", err)
	}

	s.logger.Info().Str("id", id).Str("username", account.Username).Msg("account updated")
	return outcome, nil
}

// Delete removes an account. The self-deletion check runs before any
// directory access: an account can never delete itself, whatever its role.
func (s *AccountService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		s.logger.Warn().Str("id", id).Msg("attempt to delete own account")
		return domain.ErrSelfDeletion
	}

	account, err := s.directory.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("account %s: %w", id, err)
		}
		return fmt.Errorf("load account %s: %w", id, err)
	}

	if err := s.directory.Delete(ctx, account); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete account")
		return fmt.Errorf("delete account: %w", err)
	}

	s.logger.Info().Str("id", id).Str("username", account.Username).Msg("account deleted")
	return nil
}

// FindForEdit returns the account shaped for an edit form. The password field
// is always blank; neither hash nor plaintext ever leaves the directory.
func (s *AccountService) FindForEdit(ctx context.Context, id string) (domain.AccountView, error) {
	account, err := s.directory.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.AccountView{}, fmt.Errorf("account %s: %w", id, err)
		}
		return domain.AccountView{}, fmt.Errorf("load account %s: %w", id, err)
	}
	return account.View(), nil
}

// List returns all accounts as views.
func (s *AccountService) List(ctx context.Context) ([]domain.AccountView, error) {
	accounts, err := s.directory.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	views := make([]domain.AccountView, 0, len(accounts))
	for i := range accounts {
		views = append(views, accounts[i].View())
	}
	return views, nil
}
