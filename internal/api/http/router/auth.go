package router

import (
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/handler"
	"github.com/Alijeyrad/carepulse_backend/pkg/authorize"
	"github.com/gofiber/fiber/v3"
)

func (r *Router) registerAdminRoutes(
	api fiber.Router,
	authH *handler.AuthHandler,
	ah *handler.AppointmentHandler,
	ph *handler.PatientHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	admin := api.Group("/admin")
	admin.Post("/login", authH.AdminLogin)
	admin.Post("/logout", authRequired, authH.Logout)

	appts := admin.Group("/appointments", authRequired)
	appts.Get("/", requirePerm(authorize.ResourceAppointment, authorize.ActionList), ah.ListRecent)
	appts.Get("/stats", requirePerm(authorize.ResourceAppointment, authorize.ActionRead), ah.Stats)
	appts.Patch("/:id/schedule", requirePerm(authorize.ResourceAppointment, authorize.ActionSchedule), ah.Schedule)
	appts.Patch("/:id/cancel", requirePerm(authorize.ResourceAppointment, authorize.ActionCancel), ah.Cancel)

	admin.Get("/patients/:userId/document", authRequired, requirePerm(authorize.ResourcePatient, authorize.ActionRead), ph.Document)
}
