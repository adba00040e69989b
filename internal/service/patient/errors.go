package patient

import "errors"

var (
	ErrNotFound          = errors.New("patient not found")
	ErrAlreadyRegistered = errors.New("user is already registered as a patient")
	ErrInvalidInput      = errors.New("invalid patient input")
	ErrConsentRequired   = errors.New("treatment and privacy consent are required")
	ErrUploadFailed      = errors.New("identification document upload failed")
	ErrNoDocument        = errors.New("patient has no identification document")
)
