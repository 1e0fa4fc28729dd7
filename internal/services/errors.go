package services

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserSuspended      = errors.New("user is suspended")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSamePassword       = errors.New("new password must differ from the current one")
	ErrCodeInvalid        = errors.New("invalid reset code")
	ErrCodeExpired        = errors.New("reset code has expired")
	ErrCodeNotIssued      = errors.New("invalid or expired reset code")
)
