package ports

// SessionRegistry tracks the single active session per account. Binding a new
// session id for an account invalidates whatever session was active before;
// competing logins for the same account are serialized so exactly one session
// survives.
type SessionRegistry interface {
	// Bind makes sessionID the account's current session, displacing any prior one.
	Bind(accountID, sessionID string)
	// IsCurrent reports whether sessionID is still the account's active session.
	IsCurrent(accountID, sessionID string) bool
	// Unbind removes sessionID if it is still current; a superseded session id
	// is a no-op so a stale logout cannot kill the newer session.
	Unbind(accountID, sessionID string)
}
