package config

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	Mongo          MongoConfig          `mapstructure:"mongo"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Server         ServerConfig         `mapstructure:"server"`
	Authentication AuthenticationConfig `mapstructure:"authentication"`
	Authorization  AuthorizationConfig  `mapstructure:"authorization"`
	Appointment    AppointmentConfig    `mapstructure:"appointment"`
	Email          EmailConfig          `mapstructure:"email"`
	SMS            SMSConfig            `mapstructure:"sms"`
	OTP            OTPConfig            `mapstructure:"otp"`
	Phone          PhoneConfig          `mapstructure:"phone"`
	Observability  ObservabilityConfig  `mapstructure:"observability"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Storage        StorageConfig        `mapstructure:"storage"`
	Nats           NatsConfig           `mapstructure:"nats"`
}

type NatsConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type MongoConfig struct {
	URI                   string                 `mapstructure:"uri"`
	Database              string                 `mapstructure:"database"`
	ConnectTimeoutSeconds int                    `mapstructure:"connect_timeout_seconds"`
	MaxPoolSize           uint64                 `mapstructure:"max_pool_size"`
	Collections           MongoCollectionsConfig `mapstructure:"collections"`
}

type MongoCollectionsConfig struct {
	Users        string `mapstructure:"users"`
	Patients     string `mapstructure:"patients"`
	Appointments string `mapstructure:"appointments"`
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type ServerConfig struct {
	Port           int             `mapstructure:"port"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds"`
	BodyLimitMB    int             `mapstructure:"body_limit_mb"`
	Environment    string          `mapstructure:"environment"`
	Domain         string          `mapstructure:"domain"`
	CORS           CORSConfig      `mapstructure:"cors"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Max               int `mapstructure:"max"`
	ExpirationSeconds int `mapstructure:"expiration_seconds"`
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds"`
}

type AuthenticationConfig struct {
	Paseto            PasetoConfig `mapstructure:"paseto"`
	SessionTTLMinutes int          `mapstructure:"session_ttl_minutes"`
	Admin             AdminConfig  `mapstructure:"admin"`
	// EncryptionKey is a 32-byte hex string used for AES-256-GCM encryption
	// of patient identifiers (identification number, insurance policy number).
	EncryptionKey string `mapstructure:"encryption_key"`
}

type AdminConfig struct {
	Passkey           string `mapstructure:"passkey"`
	MaxFailedAttempts int    `mapstructure:"max_failed_attempts"`
	LockoutMinutes    int    `mapstructure:"lockout_minutes"`
}

type PasetoConfig struct {
	Mode             string `mapstructure:"mode"`
	LocalKeyHex      string `mapstructure:"local_key_hex"`
	SecretKeyHex     string `mapstructure:"secret_key_hex"`
	PublicKeyHex     string `mapstructure:"public_key_hex"`
	Issuer           string `mapstructure:"issuer"`
	Audience         string `mapstructure:"audience"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
}

type AuthorizationConfig struct {
	// PolicyPath is an optional CSV policy file. Empty keeps policies in memory.
	PolicyPath  string `mapstructure:"policy_path"`
	EnableAudit bool   `mapstructure:"enable_audit"`
}

type AppointmentConfig struct {
	RecentLimit int `mapstructure:"recent_limit"`
}

type EmailConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	From    string     `mapstructure:"from"`
	SMTP    SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SMSConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Provider selects the gateway: "twilio" or "smsir".
	Provider string `mapstructure:"provider"`
	// VerifiedNumber receives every outgoing message.
	VerifiedNumber string       `mapstructure:"verified_number"`
	Twilio         TwilioConfig `mapstructure:"twilio"`
	SMSIR          SMSIRConfig  `mapstructure:"smsir"`
}

type TwilioConfig struct {
	AccountSID          string `mapstructure:"account_sid"`
	AuthToken           string `mapstructure:"auth_token"`
	MessagingServiceSID string `mapstructure:"messaging_service_sid"`
}

type SMSIRConfig struct {
	APIKey                string `mapstructure:"api_key"`
	SecretKey             string `mapstructure:"secret_key"`
	OTPTemplateID         string `mapstructure:"otp_template_id"`
	AppointmentTemplateID string `mapstructure:"appointment_template_id"`
}

type OTPConfig struct {
	Length      int `mapstructure:"length"`
	TTLMinutes  int `mapstructure:"ttl_minutes"`
	MaxAttempts int `mapstructure:"max_attempts"`
}

type PhoneConfig struct {
	DefaultRegion string `mapstructure:"default_region"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	Username string `mapstructure:"username"` // for Grafana Cloud basic auth
	Password string `mapstructure:"password"`
}

// StorageConfig points at an S3-compatible bucket. PublicEndpoint and
// ProjectID only feed the viewer URL stored on patient documents.
type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	PresignTTLSec   int    `mapstructure:"presign_ttl_sec"`
	PublicEndpoint  string `mapstructure:"public_endpoint"`
	ProjectID       string `mapstructure:"project_id"`
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Mongo.URI) == "" {
		errs = append(errs, errors.New("mongo.uri is required"))
	}
	if strings.TrimSpace(c.Mongo.Database) == "" {
		errs = append(errs, errors.New("mongo.database is required"))
	}
	if k := c.Authentication.EncryptionKey; k != "" && len(k) != 64 {
		errs = append(errs, fmt.Errorf("authentication.encryption_key must be 64 hex chars, got %d", len(k)))
	}
	if c.SMS.Enabled {
		switch c.SMS.Provider {
		case "twilio", "smsir":
		default:
			errs = append(errs, fmt.Errorf("sms.provider %q is not supported", c.SMS.Provider))
		}
		if c.SMS.VerifiedNumber == "" {
			errs = append(errs, errors.New("sms.verified_number is required when sms is enabled"))
		}
	}

	return errors.Join(errs...)
}
