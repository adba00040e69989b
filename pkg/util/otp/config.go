package otp

import (
	"time"

	"github.com/Alijeyrad/carepulse_backend/config"
)

// Config holds OTP generation and verification settings
type Config struct {
	// Length is the number of digits (6 for appointment confirmation)
	Length int

	// TTL is how long an issued code stays valid
	TTL time.Duration

	// MaxAttempts is the number of wrong guesses allowed per code
	MaxAttempts int
}

// DefaultConfig returns sensible defaults for OTP generation
func DefaultConfig() Config {
	return Config{
		Length:      DefaultLength,
		TTL:         5 * time.Minute,
		MaxAttempts: 5,
	}
}

// Validate checks if the config values are valid
func (c Config) Validate() error {
	if c.Length < MinLength || c.Length > MaxLength {
		return ErrInvalidLength
	}
	return nil
}

// FromCentralConfig converts central config.OTPConfig to package Config,
// keeping defaults for unset values.
func FromCentralConfig(c config.OTPConfig) Config {
	cfg := DefaultConfig()
	if c.Length > 0 {
		cfg.Length = c.Length
	}
	if c.TTLMinutes > 0 {
		cfg.TTL = time.Duration(c.TTLMinutes) * time.Minute
	}
	if c.MaxAttempts > 0 {
		cfg.MaxAttempts = c.MaxAttempts
	}
	return cfg
}
