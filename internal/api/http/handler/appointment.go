package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/carepulse_backend/internal/service/appointment"
	"github.com/Alijeyrad/carepulse_backend/pkg/reqctx"
)

type AppointmentHandler struct {
	svc appointment.Service
}

func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func mapAppointmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, appointment.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, appointment.ErrInvalidTransition):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// Public callers may only open pending requests and cancel them; moving an
// appointment to scheduled goes through the admin Schedule route.
func publicStatusAllowed(status, allowed string) bool {
	return status == "" || status == allowed
}

// POST /api/v1/appointments
// The appointment is stored even when the confirmation SMS fails; the
// response then carries a warning next to the data.
func (h *AppointmentHandler) Create(c fiber.Ctx) error {
	var body appointment.CreateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !publicStatusAllowed(body.Status, appointment.StatusPending) {
		return forbiddenMsg(c, "new appointments must be pending")
	}

	appt, err := h.svc.Create(c.Context(), body)
	if err != nil {
		if errors.Is(err, appointment.ErrConfirmationNotSent) && appt != nil {
			reqctx.Logger(c.Context()).Warn("appointment confirmation not delivered", "id", appt.ID.Hex(), "err", err)
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"data":    appt,
				"warning": appointment.ErrConfirmationNotSent.Error(),
			})
		}
		return mapAppointmentError(c, err)
	}

	return created(c, appt)
}

// GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c fiber.Ctx) error {
	appt, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appt)
}

// PATCH /api/v1/appointments/:id
func (h *AppointmentHandler) Update(c fiber.Ctx) error {
	var body appointment.UpdateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Status != nil && !publicStatusAllowed(*body.Status, appointment.StatusCancelled) {
		return forbiddenMsg(c, "status can only be set to cancelled here")
	}

	appt, err := h.svc.Update(c.Context(), c.Params("id"), body)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appt)
}

// PATCH /api/v1/appointments/:id/cancel
// PATCH /api/v1/admin/appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c fiber.Ctx) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	appt, err := h.svc.Cancel(c.Context(), c.Params("id"), body.Reason)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appt)
}

// PATCH /api/v1/admin/appointments/:id/schedule
func (h *AppointmentHandler) Schedule(c fiber.Ctx) error {
	var body appointment.ScheduleRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	appt, err := h.svc.Schedule(c.Context(), c.Params("id"), body)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appt)
}

// GET /api/v1/admin/appointments
func (h *AppointmentHandler) ListRecent(c fiber.Ctx) error {
	list, err := h.svc.ListRecent(c.Context())
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/admin/appointments/stats
func (h *AppointmentHandler) Stats(c fiber.Ctx) error {
	sum, err := h.svc.Stats(c.Context())
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, sum)
}
