package database

import (
	"time"

	"github.com/Alijeyrad/carepulse_backend/config"
)

// Config holds MongoDB connection settings and collection names.
type Config struct {
	URI      string
	Database string

	ConnectTimeoutSeconds int
	MaxPoolSize           uint64

	UsersCollection        string
	PatientsCollection     string
	AppointmentsCollection string
}

// DefaultConfig returns sensible defaults for the document store.
func DefaultConfig() Config {
	return Config{
		URI:                    "mongodb://localhost:27017",
		Database:               "carepulse",
		ConnectTimeoutSeconds:  10,
		MaxPoolSize:            50,
		UsersCollection:        "users",
		PatientsCollection:     "patients",
		AppointmentsCollection: "appointments",
	}
}

// ConnectTimeout returns the connect timeout as a duration
func (c Config) ConnectTimeout() time.Duration {
	if c.ConnectTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// Collections lists every collection the service owns.
func (c Config) Collections() []string {
	return []string{c.UsersCollection, c.PatientsCollection, c.AppointmentsCollection}
}

// FromCentralConfig converts central config.MongoConfig to package Config,
// falling back to defaults for unset values.
func FromCentralConfig(c config.MongoConfig) Config {
	def := DefaultConfig()
	cfg := Config{
		URI:                    c.URI,
		Database:               c.Database,
		ConnectTimeoutSeconds:  c.ConnectTimeoutSeconds,
		MaxPoolSize:            c.MaxPoolSize,
		UsersCollection:        c.Collections.Users,
		PatientsCollection:     c.Collections.Patients,
		AppointmentsCollection: c.Collections.Appointments,
	}

	if cfg.URI == "" {
		cfg.URI = def.URI
	}
	if cfg.Database == "" {
		cfg.Database = def.Database
	}
	if cfg.ConnectTimeoutSeconds <= 0 {
		cfg.ConnectTimeoutSeconds = def.ConnectTimeoutSeconds
	}
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = def.MaxPoolSize
	}
	if cfg.UsersCollection == "" {
		cfg.UsersCollection = def.UsersCollection
	}
	if cfg.PatientsCollection == "" {
		cfg.PatientsCollection = def.PatientsCollection
	}
	if cfg.AppointmentsCollection == "" {
		cfg.AppointmentsCollection = def.AppointmentsCollection
	}

	return cfg
}
