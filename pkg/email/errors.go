package email

import (
	"errors"
	"fmt"
)

var (
	ErrDisabled     = errors.New("email is disabled")
	ErrNoRecipients = errors.New("email has no recipients")
)

type ErrInvalidMessage struct{ Reason string }

func (e ErrInvalidMessage) Error() string { return "invalid email message: " + e.Reason }

// ErrSend wraps a delivery failure reported by the SMTP server.
type ErrSend struct{ Err error }

func (e ErrSend) Error() string { return fmt.Sprintf("smtp send: %v", e.Err) }
func (e ErrSend) Unwrap() error { return e.Err }
