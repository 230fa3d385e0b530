package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tradewell/backoffice/internal/core/domain"
	"github.com/tradewell/backoffice/internal/core/ports"
)

const defaultTokenTTL = 12 * time.Hour

// AccessService authenticates credentials and owns session establishment.
// Session tokens are signed JWTs carrying a random session id (jti); the
// session registry decides which jti is currently valid per account, which is
// what enforces the single-active-session policy.
type AccessService struct {
	directory ports.AccountDirectory
	hasher    ports.PasswordHasher
	sessions  ports.SessionRegistry
	throttle  ports.LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAccessService(
	directory ports.AccountDirectory,
	hasher ports.PasswordHasher,
	sessions ports.SessionRegistry,
	throttle ports.LoginThrottle,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AccessService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AccessService{
		directory: directory,
		hasher:    hasher,
		sessions:  sessions,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies the submitted credentials and, on success, binds a fresh
// session for the account. Binding displaces any previously active session:
// the old token stays cryptographically valid but its jti no longer matches
// the registry, so its next use is rejected.
func (s *AccessService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.Principal, error) {
	if input.Username == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, input.Username)
		if err != nil {
			// A throttle outage must not lock every user out.
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if !ok {
			s.logger.Warn().Str("username", input.Username).Msg("login throttled")
			return "", nil, domain.ErrTooManyLogins
		}
	}

	account, err := s.directory.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, input.Username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load account: %w", err)
	}

	if !s.hasher.Verify(input.Password, account.PasswordHash) {
		s.recordFailure(ctx, input.Username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, input.Username)
	}

	sessionID := newSessionID()
	s.sessions.Bind(account.ID, sessionID)

	token, err := s.signToken(account, sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info().Str("username", account.Username).Str("account_id", account.ID).Msg("login succeeded")

	principal := &domain.Principal{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		SessionID: sessionID,
	}
	return token, principal, nil
}

// Authenticate resolves a presented token into a principal. A well-signed
// token whose session has been displaced fails with ErrSessionSuperseded so
// the boundary can flag the session as expired; anything else unusable fails
// with ErrUnauthenticated.
func (s *AccessService) Authenticate(_ context.Context, token string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	accountID, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	sessionID, _ := claims["jti"].(string)
	if accountID == "" || sessionID == "" {
		return nil, domain.ErrUnauthenticated
	}

	if !s.sessions.IsCurrent(accountID, sessionID) {
		return nil, domain.ErrSessionSuperseded
	}

	return &domain.Principal{
		AccountID: accountID,
		Username:  username,
		Role:      role,
		SessionID: sessionID,
	}, nil
}

// Logout invalidates the principal's session immediately.
func (s *AccessService) Logout(_ context.Context, principal *domain.Principal) {
	if principal == nil {
		return
	}
	s.sessions.Unbind(principal.AccountID, principal.SessionID)
	s.logger.Info().Str("username", principal.Username).Msg("logout")
}

func (s *AccessService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AccessService) signToken(account *domain.Account, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"username": account.Username,
		"role":     account.Role,
		"jti":      sessionID,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
