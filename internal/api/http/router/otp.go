package router

import (
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/handler"
	"github.com/gofiber/fiber/v3"
)

func (r *Router) registerOTPRoutes(api fiber.Router, h *handler.OTPHandler) {
	group := api.Group("/otp")
	group.Post("/send", h.Send)
	group.Post("/verify", h.Verify)
}

// registerLegacyRoutes mounts the unversioned routes under /api.
func (r *Router) registerLegacyRoutes(api fiber.Router, h *handler.LegacyHandler) {
	api.Post("/create-user", h.CreateUser)
	api.Post("/send-otp", h.SendOTP)
}
