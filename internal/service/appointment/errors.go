package appointment

import "errors"

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrInvalidInput      = errors.New("invalid appointment input")
	ErrInvalidTransition = errors.New("illegal appointment status transition")

	// ErrConfirmationNotSent is returned together with the stored appointment
	// when persistence succeeded but the SMS could not be delivered.
	ErrConfirmationNotSent = errors.New("appointment stored but confirmation sms not sent")
)
