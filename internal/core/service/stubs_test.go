package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/tradewell/backoffice/internal/core/domain"
)

// stubDirectory is an in-memory AccountDirectory that enforces the username
// unique constraint atomically, like the real backing store does.
type stubDirectory struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]*domain.Account

	findCalls   int
	saveCalls   int
	deleteCalls int
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (d *stubDirectory) add(a *domain.Account) *domain.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	if a.ID == "" {
		d.seq++
		a.ID = fmt.Sprintf("acc-%d", d.seq)
	}
	d.accounts[a.ID] = cloneAccount(a)
	return cloneAccount(a)
}

func (d *stubDirectory) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.findCalls++
	for _, a := range d.accounts {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (d *stubDirectory) FindByID(_ context.Context, id string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.findCalls++
	a, ok := d.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (d *stubDirectory) Save(_ context.Context, account *domain.Account) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saveCalls++
	for _, a := range d.accounts {
		if a.Username == account.Username && a.ID != account.ID {
			return nil, domain.ErrUsernameTaken
		}
	}
	saved := cloneAccount(account)
	if saved.ID == "" {
		d.seq++
		saved.ID = fmt.Sprintf("acc-%d", d.seq)
	}
	d.accounts[saved.ID] = cloneAccount(saved)
	return saved, nil
}

func (d *stubDirectory) Delete(_ context.Context, account *domain.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleteCalls++
	if _, ok := d.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(d.accounts, account.ID)
	return nil
}

func (d *stubDirectory) All(_ context.Context) ([]domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []domain.Account
	for _, a := range d.accounts {
		out = append(out, *cloneAccount(a))
	}
	return out, nil
}

func (d *stubDirectory) calls() (find, save, del int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.findCalls, d.saveCalls, d.deleteCalls
}

// stubHasher hashes by prefixing, which keeps stored values recognizably
// non-plaintext without bcrypt cost in tests.
type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (stubHasher) Verify(plaintext, hash string) bool {
	return hash == "hashed:"+plaintext
}

// stubThrottle records throttle traffic and can be switched to deny.
type stubThrottle struct {
	mu       sync.Mutex
	deny     bool
	failures int
	resets   int
}

func (t *stubThrottle) Allow(context.Context, string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.deny, nil
}

func (t *stubThrottle) RecordFailure(context.Context, string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(context.Context, string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resets++
	return nil
}
