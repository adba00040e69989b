package pasetotoken

import (
	"time"

	"github.com/Alijeyrad/carepulse_backend/config"
	"github.com/gofiber/fiber/v3"
)

// CtxKeyClaims is the fiber Locals key the auth middleware stores claims under.
const CtxKeyClaims = "auth.claims"

func ClaimsFromFiber(c fiber.Ctx) (*Claims, bool) {
	v := c.Locals(CtxKeyClaims)
	if v == nil {
		return nil, false
	}
	cl, ok := v.(*Claims)
	return cl, ok
}

// NewPasetoManager creates a new PASETO manager from config.
// Returns an error if the configuration is invalid.
func NewPasetoManager(cfg *config.Config) (*Manager, error) {
	p := cfg.Authentication.Paseto

	mode, err := ParseMode(p.Mode)
	if err != nil {
		return nil, err
	}

	keys, err := LoadKeys(KeyStrings{
		Mode:         mode,
		SymmetricHex: p.LocalKeyHex,
		SecretHex:    p.SecretKeyHex,
		PublicHex:    p.PublicKeyHex,
	})
	if err != nil {
		return nil, err
	}

	mgr, err := New(Config{
		Mode:      mode,
		Issuer:    p.Issuer,
		Audience:  p.Audience,
		AccessTTL: time.Duration(p.AccessTTLMinutes) * time.Minute,
	}, keys)
	if err != nil {
		return nil, err
	}

	return mgr, nil
}

