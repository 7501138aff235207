package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrAdminRequired      = errors.New("administrator access required")
	ErrNoSession          = errors.New("not logged in")
	ErrAccountDisabled    = errors.New("account is no longer active")
)
