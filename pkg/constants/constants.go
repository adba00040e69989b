package constants

const (
	AppName = "carepulse"

	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "CAREPULSE"
)

// NATS subjects. The trailing token is the appointment id.
const (
	SubjectAppointmentCreated = AppName + ".appointment.created"
	SubjectAppointmentUpdated = AppName + ".appointment.updated"
)

// Redis key prefixes.
const (
	RedisKeyOTP          = "otp:"
	RedisKeyOTPAttempts  = "otp:attempts:"
	RedisKeySession      = "session:"
	RedisKeyAdminLockout = "admin:failed:"
)
