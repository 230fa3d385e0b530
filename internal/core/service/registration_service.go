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

// RegistrationService creates self-registered accounts. The role is always
// USER; privilege escalation goes through account management, never through
// the public registration form.
type RegistrationService struct {
	directory ports.AccountDirectory
	hasher    ports.PasswordHasher
	logger    zerolog.Logger
}

func NewRegistrationService(directory ports.AccountDirectory, hasher ports.PasswordHasher, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{directory: directory, hasher: hasher, logger: logger}
}

// Register validates the whole form before deciding: every failed rule lands
// in the outcome, nothing short-circuits. Storage is only touched for the
// uniqueness lookup until the outcome is clean.
func (s *RegistrationService) Register(ctx context.Context, input ports.RegisterInput) (domain.ValidationOutcome, error) {
	outcome := checkStruct(input)

	free, err := checkUsernameFree(ctx, s.directory, input.Username)
	if err != nil {
		return outcome, err
	}
	outcome.Merge(free)
	outcome.Merge(checkPasswordStrength(input.Password))
	outcome.Merge(checkConfirmation(input.Password, input.ConfirmPassword))

	if outcome.HasErrors() {
		s.logger.Warn().Str("username", input.Username).Int("errors", len(outcome.Errors)).Msg("registration rejected")
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
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.directory.Save(ctx, account); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			// Lost a race with a concurrent registration; the unique index is
			// the source of truth, report it like any other collision.
			outcome.Reject("username", codeUsernameTaken, msgUsernameTaken)
			return outcome, nil
		}
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to save registered account")
		return outcome, fmt.Errorf("save account: %w", err)
	}

	s.logger.Info().Str("username", input.Username).Msg("account registered")
	return outcome, nil
}
