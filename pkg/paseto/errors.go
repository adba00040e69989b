package pasetotoken

import "errors"

// ErrConfig reports a manager or key setup problem.
type ErrConfig struct{ Msg string }

func (e ErrConfig) Error() string { return "paseto: " + e.Msg }

// ErrInvalidToken wraps any parse, signature or claim failure.
type ErrInvalidToken struct{ Err error }

func (e ErrInvalidToken) Error() string { return "paseto: invalid token: " + e.Err.Error() }
func (e ErrInvalidToken) Unwrap() error { return e.Err }

// IsInvalidToken reports whether err came from a rejected token.
func IsInvalidToken(err error) bool {
	var it ErrInvalidToken
	return errors.As(err, &it)
}
