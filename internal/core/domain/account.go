package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Account models one back-office user as stored in the directory.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountView is the account as exposed to callers and edit forms.
// Password is always blank; a stored hash is never echoed back.
type AccountView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// View derives the outward representation of an account.
func (a *Account) View() AccountView {
	return AccountView{
		ID:       a.ID,
		Username: a.Username,
		FullName: a.FullName,
		Password: "",
		Role:     a.Role,
	}
}
