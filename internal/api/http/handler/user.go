package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/carepulse_backend/internal/service/appointment"
	"github.com/Alijeyrad/carepulse_backend/internal/service/patient"
	"github.com/Alijeyrad/carepulse_backend/internal/service/user"
)

type UserHandler struct {
	svc          user.Service
	patients     patient.Service
	appointments appointment.Service
}

func NewUserHandler(svc user.Service, patients patient.Service, appointments appointment.Service) *UserHandler {
	return &UserHandler{svc: svc, patients: patients, appointments: appointments}
}

func mapUserError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		return conflict(c, err.Error())
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidPhone):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /api/v1/users
func (h *UserHandler) Create(c fiber.Ctx) error {
	var body user.CreateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	u, err := h.svc.Create(c.Context(), body)
	if err != nil {
		return mapUserError(c, err)
	}

	return created(c, u)
}

// GET /api/v1/users/:id
func (h *UserHandler) Get(c fiber.Ctx) error {
	u, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, u)
}

// GET /api/v1/users/:id/patient
func (h *UserHandler) Patient(c fiber.Ctx) error {
	p, err := h.patients.GetByUserID(c.Context(), c.Params("id"))
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// GET /api/v1/users/:id/appointments
func (h *UserHandler) Appointments(c fiber.Ctx) error {
	appts, err := h.appointments.ListByUser(c.Context(), c.Params("id"))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appts)
}
