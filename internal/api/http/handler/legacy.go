package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/carepulse_backend/internal/service/otp"
	"github.com/Alijeyrad/carepulse_backend/internal/service/user"
	"github.com/Alijeyrad/carepulse_backend/pkg/reqctx"
)

// LegacyHandler serves the two unversioned routes older clients call. Their
// bodies use {success, ...} instead of {data}/{error}.
type LegacyHandler struct {
	users user.Service
	otp   otp.Service
}

func NewLegacyHandler(users user.Service, otpSvc otp.Service) *LegacyHandler {
	return &LegacyHandler{users: users, otp: otpSvc}
}

func legacyFailure(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": msg})
}

// POST /api/create-user
func (h *LegacyHandler) CreateUser(c fiber.Ctx) error {
	var body user.CreateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return legacyFailure(c, "invalid request body")
	}

	u, err := h.users.Create(c.Context(), body)
	if err != nil {
		reqctx.Logger(c.Context()).Warn("create-user failed", "err", err)
		return legacyFailure(c, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "user": u})
}

// POST /api/send-otp
func (h *LegacyHandler) SendOTP(c fiber.Ctx) error {
	code, err := h.otp.Send(c.Context())
	if err != nil {
		reqctx.Logger(c.Context()).Warn("send-otp failed", "err", err)
		return legacyFailure(c, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "otp": code})
}
