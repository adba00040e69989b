package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/carepulse_backend/internal/service/otp"
)

type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

func mapOTPError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, otp.ErrOTPExpired):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, otp.ErrOTPInvalid):
		return unprocessable(c, err.Error())
	case errors.Is(err, otp.ErrOTPMaxAttempts):
		return tooManyRequests(c, err.Error())
	case errors.Is(err, otp.ErrSendFailed):
		return badGateway(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /api/v1/otp/send
func (h *OTPHandler) Send(c fiber.Ctx) error {
	if _, err := h.svc.Send(c.Context()); err != nil {
		return mapOTPError(c, err)
	}
	return ok(c, fiber.Map{"message": "verification code sent"})
}

// POST /api/v1/otp/verify
func (h *OTPHandler) Verify(c fiber.Ctx) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.Code == "" {
		return badRequest(c, "code is required")
	}

	if err := h.svc.Verify(c.Context(), body.Code); err != nil {
		return mapOTPError(c, err)
	}
	return ok(c, fiber.Map{"verified": true})
}
