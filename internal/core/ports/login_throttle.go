package ports

import "context"

// LoginThrottle limits repeated failed logins per username. Implementations
// decide the window and the limit; the access service only consults and
// records.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
