package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/carepulse_backend/config"
	"github.com/Alijeyrad/carepulse_backend/pkg/authorize"
	"github.com/Alijeyrad/carepulse_backend/pkg/constants"
	"github.com/Alijeyrad/carepulse_backend/pkg/observability"
	"github.com/Alijeyrad/carepulse_backend/pkg/util/passkey"
)

const (
	defaultMaxFailures = 5
	defaultLockout     = 15 * time.Minute
	defaultSessionTTL  = 60 * time.Minute
)

func redisKeyFailed(clientIP string) string { return constants.RedisKeyAdminLockout + clientIP }

func redisKeySession(sessionID string) string { return constants.RedisKeySession + sessionID }

// TokenIssuer signs access tokens bound to a session.
type TokenIssuer interface {
	IssueAccess(subject, role string, sessionID *uuid.UUID) (string, error)
	AccessTTL() time.Duration
}

type Config struct {
	// Passkey is the plain secret or its Argon2id PHC hash.
	Passkey     string
	MaxFailures int
	Lockout     time.Duration
	SessionTTL  time.Duration
}

func FromCentralConfig(c config.AuthenticationConfig) Config {
	return Config{
		Passkey:     c.Admin.Passkey,
		MaxFailures: c.Admin.MaxFailedAttempts,
		Lockout:     time.Duration(c.Admin.LockoutMinutes) * time.Minute,
		SessionTTL:  time.Duration(c.SessionTTLMinutes) * time.Minute,
	}
}

type AdminSession struct {
	AccessToken string    `json:"access_token"`
	SessionID   uuid.UUID `json:"-"`
	ExpiresIn   int64     `json:"expires_in"`
}

type Service interface {
	AdminLogin(ctx context.Context, passkey, clientIP string) (*AdminSession, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	// CheckSession reports ErrSessionNotFound once a session is gone.
	CheckSession(ctx context.Context, sessionID uuid.UUID) error
}

type authService struct {
	rdb    *redis.Client
	tokens TokenIssuer
	cfg    Config
}

func New(rdb *redis.Client, tokens TokenIssuer, cfg Config) Service {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = defaultMaxFailures
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = defaultLockout
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	return &authService{rdb: rdb, tokens: tokens, cfg: cfg}
}

func (s *authService) AdminLogin(ctx context.Context, passkey, clientIP string) (*AdminSession, error) {
	m := observability.Metrics()
	if s.cfg.Passkey == "" {
		return nil, ErrNotConfigured
	}

	failKey := redisKeyFailed(clientIP)
	failures, err := s.rdb.Get(ctx, failKey).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get failures: %w", err)
	}
	if failures >= s.cfg.MaxFailures {
		m.AdminLogin(ctx, "locked")
		return nil, ErrLockedOut
	}

	if !s.passkeyMatches(passkey) {
		s.recordFailure(ctx, failKey)
		m.AdminLogin(ctx, "invalid")
		return nil, ErrInvalidPasskey
	}
	s.rdb.Del(ctx, failKey)

	sessionID := uuid.Must(uuid.NewV7())
	if err := s.rdb.Set(ctx, redisKeySession(sessionID.String()), string(authorize.AdminSubject), s.cfg.SessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.tokens.IssueAccess(string(authorize.AdminSubject), string(authorize.RoleSysAdmin), &sessionID)
	if err != nil {
		s.rdb.Del(ctx, redisKeySession(sessionID.String()))
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	m.AdminLogin(ctx, "ok")
	return &AdminSession{
		AccessToken: token,
		SessionID:   sessionID,
		ExpiresIn:   int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	deleted, err := s.rdb.Del(ctx, redisKeySession(sessionID.String())).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if deleted == 0 {
		slog.Debug("logout: session already expired", "session_id", sessionID)
	}
	return nil
}

func (s *authService) CheckSession(ctx context.Context, sessionID uuid.UUID) error {
	err := s.rdb.Get(ctx, redisKeySession(sessionID.String())).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrSessionNotFound
	case err != nil:
		return fmt.Errorf("redis get session: %w", err)
	}
	return nil
}

// passkeyMatches accepts either a plain configured passkey or an Argon2id
// hash of it.
func (s *authService) passkeyMatches(given string) bool {
	if passkey.IsHash(s.cfg.Passkey) {
		return passkey.Verify(s.cfg.Passkey, given) == nil
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(s.cfg.Passkey)) == 1
}

// recordFailure bumps the per-IP counter; the window starts at the first miss.
func (s *authService) recordFailure(ctx context.Context, key string) {
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("admin login: record failure", "err", err)
		return
	}
	if n == 1 || n >= int64(s.cfg.MaxFailures) {
		s.rdb.Expire(ctx, key, s.cfg.Lockout)
	}
}
