package domain

import (
	"strings"
	"unicode"
)

// passwordSymbols is the fixed set of characters that count as a symbol for
// password-strength purposes.
const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

const minPasswordLength = 8

// IsPasswordStrong reports whether a password satisfies the account password
// policy: at least 8 characters, with at least one uppercase letter, one
// lowercase letter, one digit and one symbol.
func IsPasswordStrong(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// PasswordsMatch reports whether a password and its confirmation are equal.
func PasswordsMatch(password, confirmation string) bool {
	return password == confirmation
}
