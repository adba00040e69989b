package redis

import (
	"time"

	"github.com/Alijeyrad/carepulse_backend/config"
)

// Config holds Redis connection settings. The same server backs OTP codes,
// admin sessions, login lockouts and the rate limiter.
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func positive(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func seconds(v int, fallback time.Duration) time.Duration {
	if v > 0 {
		return time.Duration(v) * time.Second
	}
	return fallback
}

// FromCentralConfig converts config.RedisConfig, falling back to
// DefaultConfig for unset pool sizes and timeouts.
func FromCentralConfig(c config.RedisConfig) Config {
	d := DefaultConfig()
	return Config{
		Addr:         c.Addr,
		DB:           c.DB,
		Username:     c.Username,
		Password:     c.Password,
		PoolSize:     positive(c.PoolSize, d.PoolSize),
		MinIdleConns: positive(c.MinIdleConns, d.MinIdleConns),
		DialTimeout:  seconds(c.DialTimeoutSeconds, d.DialTimeout),
		ReadTimeout:  seconds(c.ReadTimeoutSeconds, d.ReadTimeout),
		WriteTimeout: seconds(c.WriteTimeoutSeconds, d.WriteTimeout),
	}
}
