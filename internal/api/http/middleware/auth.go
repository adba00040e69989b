package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	pasetotoken "github.com/Alijeyrad/carepulse_backend/pkg/paseto"
	"github.com/Alijeyrad/carepulse_backend/pkg/reqctx"
)

// TokenVerifier parses and validates access tokens.
type TokenVerifier interface {
	Verify(token string) (*pasetotoken.Claims, error)
}

// SessionChecker confirms a session id is still live.
type SessionChecker interface {
	CheckSession(ctx context.Context, sessionID uuid.UUID) error
}

// AuthRequired validates a Bearer PASETO access token and checks its session.
// On success the claims are stored in c.Locals(pasetotoken.CtxKeyClaims) and
// on the request context.
func AuthRequired(tokens TokenVerifier, sessions SessionChecker) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get("Authorization")
		if h == "" {
			return fiber.ErrUnauthorized
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.ErrUnauthorized
		}

		claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		if claims.Type != pasetotoken.TokenTypeAccess || claims.SessionID == nil {
			return fiber.ErrUnauthorized
		}

		if err := sessions.CheckSession(c.Context(), *claims.SessionID); err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(pasetotoken.CtxKeyClaims, claims)
		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}
