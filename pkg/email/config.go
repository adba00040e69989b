package email

import (
	"time"

	"github.com/Alijeyrad/carepulse_backend/config"
)

type Config struct {
	Enabled bool
	From    string

	Host     string
	Port     int
	Username string
	Password string
	// UseTLS dials with implicit TLS (port 465). Otherwise STARTTLS is used
	// when the server offers it.
	UseTLS  bool
	Timeout time.Duration
}

func FromCentralConfig(c config.EmailConfig) Config {
	cfg := Config{
		Enabled:  c.Enabled,
		From:     c.From,
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		UseTLS:   c.SMTP.UseTLS,
		Timeout:  time.Duration(c.SMTP.TimeoutSeconds) * time.Second,
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}
