package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/carepulse_backend/internal/service/auth"
	pasetotoken "github.com/Alijeyrad/carepulse_backend/pkg/paseto"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func mapAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidPasskey):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, auth.ErrLockedOut):
		return tooManyRequests(c, err.Error())
	case errors.Is(err, auth.ErrSessionNotFound):
		return unauthorized(c)
	case errors.Is(err, auth.ErrNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		return internalError(c)
	}
}

// POST /api/v1/admin/login
func (h *AuthHandler) AdminLogin(c fiber.Ctx) error {
	var body struct {
		Passkey string `json:"passkey"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.Passkey == "" {
		return badRequest(c, "passkey is required")
	}

	sess, err := h.svc.AdminLogin(c.Context(), body.Passkey, c.IP())
	if err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, sess)
}

// POST /api/v1/admin/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid || claims.SessionID == nil {
		return unauthorized(c)
	}

	if err := h.svc.Logout(c.Context(), *claims.SessionID); err != nil {
		return mapAuthError(c, err)
	}

	return noContent(c)
}
