package router

import (
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/handler"
	"github.com/gofiber/fiber/v3"
)

func (r *Router) registerAppointmentRoutes(api fiber.Router, h *handler.AppointmentHandler) {
	appts := api.Group("/appointments")
	appts.Post("/", h.Create)

	a := appts.Group("/:id")
	a.Get("/", h.Get)
	a.Patch("/", h.Update)
	a.Patch("/cancel", h.Cancel)
}
