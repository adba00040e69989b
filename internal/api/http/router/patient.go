package router

import (
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/handler"
	"github.com/gofiber/fiber/v3"
)

func (r *Router) registerPatientRoutes(api fiber.Router, h *handler.PatientHandler) {
	api.Post("/patients", h.Register)
}
