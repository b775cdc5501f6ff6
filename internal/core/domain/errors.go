package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	ErrTaskNotFound = errors.New("task not found")
	ErrNoteNotFound = errors.New("note not found")
)

// Token verification outcomes. The token service returns exactly one of the
// first three; the auth middleware folds them into the last three.
var (
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenMalformed  = errors.New("token malformed")
	ErrTokenUnexpected = errors.New("token could not be verified")

	ErrUnauthorized = errors.New("access token required")
	ErrTokenInvalid = errors.New("invalid token")
)
