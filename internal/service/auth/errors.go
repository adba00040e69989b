package auth

import "errors"

var (
	ErrInvalidPasskey  = errors.New("admin passkey is incorrect")
	ErrLockedOut       = errors.New("too many failed attempts, try again later")
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrNotConfigured   = errors.New("admin passkey is not configured")
)
