package domain

// Principal is the authenticated identity attached to a request. It is derived
// from an Account at login time and carries only what authorization decisions
// need; it is deliberately not the storage model.
type Principal struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	SessionID string `json:"-"`
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
