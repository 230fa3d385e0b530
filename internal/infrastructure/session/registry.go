// Package session holds the in-process session registry backing the
// single-active-session policy. It is deliberately not distributed; one
// process owns the session state.
package session

import (
	"sync"

	"github.com/tradewell/backoffice/internal/api/metrics"
)

// Registry maps account id -> currently valid session id. All access goes
// through one mutex, so two competing logins for the same account serialize
// and exactly one session survives.
type Registry struct {
	mu      sync.Mutex
	current map[string]string
}

func NewRegistry() *Registry {
	return &Registry{current: make(map[string]string)}
}

// Bind installs sessionID as the account's active session, displacing any
// prior one.
func (r *Registry) Bind(accountID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current[accountID] = sessionID
	metrics.ActiveSessions.Set(float64(len(r.current)))
}

// IsCurrent reports whether sessionID is still the account's active session.
func (r *Registry) IsCurrent(accountID, sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sessionID != "" && r.current[accountID] == sessionID
}

// Unbind removes the session only when it is still current; a logout carrying
// a superseded session id must not invalidate the newer login.
func (r *Registry) Unbind(accountID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current[accountID] == sessionID {
		delete(r.current, accountID)
	}
	metrics.ActiveSessions.Set(float64(len(r.current)))
}
