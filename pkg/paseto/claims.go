package pasetotoken

import (
	"time"

	"github.com/google/uuid"
)

type TokenType string

const TokenTypeAccess TokenType = "access"

// Claims is the app-facing token payload.
type Claims struct {
	Type TokenType

	// Subject names the principal. Dashboard sessions use "admin".
	Subject   string
	Role      string
	SessionID *uuid.UUID

	Issuer   string
	Audience string

	IssuedAt    time.Time
	NotBefore   time.Time
	ExpiresAt   time.Time
	TokenID     string // jti
	RawFooter   []byte
	RawClaimsJS []byte
}

func (c *Claims) GetSubject() string { return c.Subject }

func (c *Claims) GetRole() string { return c.Role }

func (c *Claims) GetSessionID() *uuid.UUID { return c.SessionID }

func (c *Claims) GetTokenType() string { return string(c.Type) }

func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
