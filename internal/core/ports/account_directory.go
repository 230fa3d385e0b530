package ports

import (
	"context"

	"github.com/tradewell/backoffice/internal/core/domain"
)

// AccountDirectory is the persistence boundary for accounts. It is the only
// component allowed to touch durable storage; the backing store owns the
// unique constraint on username.
type AccountDirectory interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Save inserts the account when it has no ID yet, otherwise replaces the
	// stored document. A username collision surfaces as domain.ErrUsernameTaken.
	Save(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, account *domain.Account) error
	All(ctx context.Context) ([]domain.Account, error)
}
