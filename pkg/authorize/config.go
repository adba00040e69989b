package authorize

import "github.com/Alijeyrad/carepulse_backend/config"

// Config holds configuration for the authorization system
type Config struct {
	// PolicyPath is an optional CSV file loaded on start. When empty the
	// policies live in memory and are seeded at boot.
	PolicyPath string

	// EnableAudit logs every authorization decision.
	EnableAudit bool
}

func DefaultConfig() Config {
	return Config{EnableAudit: true}
}

func FromCentralConfig(c config.AuthorizationConfig) Config {
	return Config{
		PolicyPath:  c.PolicyPath,
		EnableAudit: c.EnableAudit,
	}
}
