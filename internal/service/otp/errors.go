package otp

import "errors"

var (
	ErrOTPExpired     = errors.New("OTP has expired or does not exist")
	ErrOTPInvalid     = errors.New("OTP code is incorrect")
	ErrOTPMaxAttempts = errors.New("too many incorrect OTP attempts")
	ErrSendFailed     = errors.New("OTP could not be delivered")
)
