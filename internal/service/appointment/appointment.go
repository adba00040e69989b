package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/pkg/observability"
	"github.com/Alijeyrad/carepulse_backend/pkg/reqctx"
	"github.com/Alijeyrad/carepulse_backend/pkg/sms"
)

// DefaultRecentLimit is the admin dashboard page size.
const DefaultRecentLimit = 100

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

// Store is the persistence the lifecycle needs; *repo.AppointmentRepo
// satisfies it.
type Store interface {
	Create(ctx context.Context, a *repo.Appointment) error
	Get(ctx context.Context, id string) (*repo.Appointment, error)
	FindByUser(ctx context.Context, userID string) ([]*repo.Appointment, error)
	ListRecent(ctx context.Context, limit int) ([]*repo.Appointment, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Update(ctx context.Context, id string, u repo.AppointmentUpdate) (*repo.Appointment, error)
}

type Notifier interface {
	Send(ctx context.Context, msg sms.Message) error
}

type Events interface {
	AppointmentCreated(id string) error
	AppointmentUpdated(id string) error
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	UserID             string `json:"userId"`
	PatientID          string `json:"patientId"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	PrimaryPhysician   string `json:"primaryPhysician"`
	AppointmentDate    string `json:"appointmentDate"`
	AppointmentTime    string `json:"appointmentTime"`
	Reason             string `json:"reason"`
	Note               string `json:"note"`
	CancellationReason string `json:"cancellationReason"`
	Status             string `json:"status"`
	Type               string `json:"type"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	AppointmentDate *string `json:"appointmentDate"`
	AppointmentTime *string `json:"appointmentTime"`
	Note            *string `json:"note"`
	Status          *string `json:"status"`
	Reason          *string `json:"reason"`
}

type ScheduleRequest struct {
	AppointmentDate  *string `json:"appointmentDate"`
	AppointmentTime  *string `json:"appointmentTime"`
	PrimaryPhysician *string `json:"primaryPhysician"`
	Reason           *string `json:"reason"`
	Note             *string `json:"note"`
}

type Summary struct {
	TotalCount     int64 `json:"totalCount"`
	ScheduledCount int64 `json:"scheduledCount"`
	PendingCount   int64 `json:"pendingCount"`
	CancelledCount int64 `json:"cancelledCount"`
}

type RecentList struct {
	Summary
	Documents []*repo.Appointment `json:"documents"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*repo.Appointment, error)
	Cancel(ctx context.Context, id, reason string) (*repo.Appointment, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*repo.Appointment, error)
	Schedule(ctx context.Context, id string, req ScheduleRequest) (*repo.Appointment, error)
	Get(ctx context.Context, id string) (*repo.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]*repo.Appointment, error)
	ListRecent(ctx context.Context) (*RecentList, error)
	Stats(ctx context.Context) (*Summary, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	store       Store
	sms         Notifier
	events      Events
	recentLimit int
}

// New builds the service. events may be nil; recentLimit <= 0 uses
// DefaultRecentLimit.
func New(store Store, notifier Notifier, events Events, recentLimit int) Service {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &appointmentService{store: store, sms: notifier, events: events, recentLimit: recentLimit}
}

func (r CreateRequest) validate() error {
	var missing []string
	for _, f := range []struct{ name, v string }{
		{"userId", r.UserID},
		{"patientId", r.PatientID},
		{"appointmentDate", r.AppointmentDate},
		{"appointmentTime", r.AppointmentTime},
		{"status", r.Status},
		{"type", r.Type},
	} {
		if strings.TrimSpace(f.v) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if !validStatus(r.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, r.Status)
	}
	if !validType(r.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, r.Type)
	}
	if r.CancellationReason != "" && r.Status != StatusCancelled {
		return fmt.Errorf("%w: cancellationReason requires status %q", ErrInvalidInput, StatusCancelled)
	}
	return nil
}

// ConfirmationText is the SMS sent after an appointment is stored.
func ConfirmationText(name, date, tm, status string) string {
	if name == "" {
		name = "Patient"
	}
	if status == StatusScheduled {
		return fmt.Sprintf("Hello %s, your appointment with our clinic is confirmed on %s at %s.", name, date, tm)
	}
	return fmt.Sprintf("Hello %s, we received your appointment request for %s at %s. We will confirm it shortly.", name, date, tm)
}

func (s *appointmentService) Create(ctx context.Context, req CreateRequest) (*repo.Appointment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	appt := &repo.Appointment{
		UserID:             req.UserID,
		PatientID:          req.PatientID,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		PrimaryPhysician:   req.PrimaryPhysician,
		Date:               req.AppointmentDate,
		Time:               req.AppointmentTime,
		Reason:             req.Reason,
		Note:               req.Note,
		CancellationReason: req.CancellationReason,
		Status:             req.Status,
		Type:               req.Type,
	}
	if err := s.store.Create(ctx, appt); err != nil {
		reqctx.Logger(ctx).Error("appointment: create failed", "user_id", req.UserID, "err", err)
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	observability.Metrics().AppointmentCreated(ctx, appt.Status)

	id := appt.ID.Hex()
	s.publish(id, true)

	err := s.sms.Send(ctx, sms.Message{
		Kind: sms.KindAppointment,
		Body: ConfirmationText(appt.Name, appt.Date, appt.Time, appt.Status),
		Params: []sms.Param{
			{Key: "NAME", Value: appt.Name},
			{Key: "DATE", Value: appt.Date},
			{Key: "TIME", Value: appt.Time},
		},
	})
	observability.Metrics().SMSSent(ctx, string(sms.KindAppointment), err)
	if err != nil {
		reqctx.Logger(ctx).Warn("appointment: confirmation sms failed", "appointment_id", id, "err", err)
		return appt, fmt.Errorf("%w: %w", ErrConfirmationNotSent, err)
	}

	return appt, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id, reason string) (*repo.Appointment, error) {
	status, typ := StatusCancelled, TypeCancel
	appt, err := s.store.Update(ctx, id, repo.AppointmentUpdate{
		Status:             &status,
		Type:               &typ,
		CancellationReason: &reason,
	})
	observability.Metrics().Transition(ctx, StatusCancelled, err)
	if err != nil {
		return nil, s.writeErr("cancel", id, err)
	}
	s.publish(id, false)
	return appt, nil
}

func (s *appointmentService) Update(ctx context.Context, id string, req UpdateRequest) (*repo.Appointment, error) {
	if req.Status != nil {
		if err := s.guard(ctx, id, *req.Status); err != nil {
			return nil, err
		}
	}

	appt, err := s.store.Update(ctx, id, repo.AppointmentUpdate{
		Date:   req.AppointmentDate,
		Time:   req.AppointmentTime,
		Note:   req.Note,
		Status: req.Status,
		Reason: req.Reason,
	})
	if req.Status != nil {
		observability.Metrics().Transition(ctx, *req.Status, err)
	}
	if err != nil {
		return nil, s.writeErr("update", id, err)
	}
	s.publish(id, false)
	return appt, nil
}

func (s *appointmentService) Schedule(ctx context.Context, id string, req ScheduleRequest) (*repo.Appointment, error) {
	if err := s.guard(ctx, id, StatusScheduled); err != nil {
		return nil, err
	}

	status, typ := StatusScheduled, TypeSchedule
	appt, err := s.store.Update(ctx, id, repo.AppointmentUpdate{
		Date:             req.AppointmentDate,
		Time:             req.AppointmentTime,
		PrimaryPhysician: req.PrimaryPhysician,
		Reason:           req.Reason,
		Note:             req.Note,
		Status:           &status,
		Type:             &typ,
	})
	observability.Metrics().Transition(ctx, StatusScheduled, err)
	if err != nil {
		return nil, s.writeErr("schedule", id, err)
	}
	s.publish(id, false)
	return appt, nil
}

// guard loads the current record and rejects an illegal move to status to.
func (s *appointmentService) guard(ctx context.Context, id, to string) error {
	if !validStatus(to) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}
	cur, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(cur.Status, to) {
		observability.Metrics().Transition(ctx, to, ErrInvalidTransition)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, to)
	}
	return nil
}

func (s *appointmentService) writeErr(op, id string, err error) error {
	if repo.IsNotFound(err) {
		return ErrNotFound
	}
	slog.Error("appointment: "+op+" failed", "appointment_id", id, "err", err)
	return fmt.Errorf("%s appointment: %w", op, err)
}

func (s *appointmentService) publish(id string, created bool) {
	if s.events == nil {
		return
	}
	var err error
	if created {
		err = s.events.AppointmentCreated(id)
	} else {
		err = s.events.AppointmentUpdated(id)
	}
	if err != nil {
		slog.Warn("appointment: publish event failed", "appointment_id", id, "err", err)
	}
}

func (s *appointmentService) Get(ctx context.Context, id string) (*repo.Appointment, error) {
	appt, err := s.store.Get(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return appt, nil
}

func (s *appointmentService) ListByUser(ctx context.Context, userID string) ([]*repo.Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: missing userId", ErrInvalidInput)
	}
	appts, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user appointments: %w", err)
	}
	if appts == nil {
		appts = []*repo.Appointment{}
	}
	return appts, nil
}

func (s *appointmentService) ListRecent(ctx context.Context) (*RecentList, error) {
	appts, err := s.store.ListRecent(ctx, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent appointments: %w", err)
	}
	if appts == nil {
		appts = []*repo.Appointment{}
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	out := &RecentList{Summary: Summarize(appts), Documents: appts}
	if total > out.TotalCount {
		out.TotalCount = total
	}
	return out, nil
}

// Summarize counts statuses over appts in one pass. TotalCount is len(appts).
func Summarize(appts []*repo.Appointment) Summary {
	sum := Summary{TotalCount: int64(len(appts))}
	for _, a := range appts {
		switch a.Status {
		case StatusScheduled:
			sum.ScheduledCount++
		case StatusPending:
			sum.PendingCount++
		case StatusCancelled:
			sum.CancelledCount++
		}
	}
	return sum
}

func (s *appointmentService) Stats(ctx context.Context) (*Summary, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointment stats: %w", err)
	}
	sum := &Summary{
		ScheduledCount: counts[StatusScheduled],
		PendingCount:   counts[StatusPending],
		CancelledCount: counts[StatusCancelled],
	}
	for _, n := range counts {
		sum.TotalCount += n
	}
	return sum, nil
}
