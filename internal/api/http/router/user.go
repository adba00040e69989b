package router

import (
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/handler"
	"github.com/gofiber/fiber/v3"
)

func (r *Router) registerUserRoutes(api fiber.Router, h *handler.UserHandler) {
	users := api.Group("/users")
	users.Post("/", h.Create)

	u := users.Group("/:id")
	u.Get("/", h.Get)
	u.Get("/patient", h.Patient)
	u.Get("/appointments", h.Appointments)
}
