package domain

import "errors"

var ErrAccountNotFound = errors.New("account not found")
var ErrUsernameTaken = errors.New("username already used")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrSelfDeletion = errors.New("cannot delete own account")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyLogins = errors.New("too many login attempts")

// ErrSessionSuperseded marks a session invalidated by a newer login for the
// same account; its holder is sent back to login with an expired indicator.
var ErrSessionSuperseded = errors.New("session superseded by a newer login")

// ErrUnauthenticated marks a request with no usable session on a route that
// requires one.
var ErrUnauthenticated = errors.New("authentication required")
