package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/pkg/sms"
)

// ---------------------------------------------------------------------------
// fakes
// ---------------------------------------------------------------------------

type fakeStore struct {
	items     map[string]*repo.Appointment
	order     []string
	createErr error
	total     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]*repo.Appointment{}}
}

func (f *fakeStore) Create(_ context.Context, a *repo.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.items[a.ID.Hex()] = &cp
	f.order = append(f.order, a.ID.Hex())
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*repo.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) FindByUser(_ context.Context, userID string) ([]*repo.Appointment, error) {
	var out []*repo.Appointment
	for _, id := range f.order {
		if a := f.items[id]; a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecent(_ context.Context, limit int) ([]*repo.Appointment, error) {
	var out []*repo.Appointment
	for i := len(f.order) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *f.items[f.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) Count(context.Context) (int64, error) {
	if f.total > 0 {
		return f.total, nil
	}
	return int64(len(f.items)), nil
}

func (f *fakeStore) CountByStatus(context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, a := range f.items {
		out[a.Status]++
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id string, u repo.AppointmentUpdate) (*repo.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.Date, u.Date)
	set(&a.Time, u.Time)
	set(&a.PrimaryPhysician, u.PrimaryPhysician)
	set(&a.Reason, u.Reason)
	set(&a.Note, u.Note)
	set(&a.CancellationReason, u.CancellationReason)
	set(&a.Status, u.Status)
	set(&a.Type, u.Type)
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

type fakeSMS struct {
	sent []sms.Message
	err  error
}

func (f *fakeSMS) Send(_ context.Context, m sms.Message) error {
	f.sent = append(f.sent, m)
	return f.err
}

type fakeEvents struct {
	created, updated []string
}

func (f *fakeEvents) AppointmentCreated(id string) error {
	f.created = append(f.created, id)
	return nil
}

func (f *fakeEvents) AppointmentUpdated(id string) error {
	f.updated = append(f.updated, id)
	return nil
}

func validCreate() CreateRequest {
	return CreateRequest{
		UserID:          "u1",
		PatientID:       "p1",
		AppointmentDate: "2025-01-10",
		AppointmentTime: "10:00",
		Status:          StatusPending,
		Type:            TypeCreate,
	}
}

func newTestService() (*appointmentService, *fakeStore, *fakeSMS, *fakeEvents) {
	store, notifier, events := newFakeStore(), &fakeSMS{}, &fakeEvents{}
	svc := New(store, notifier, events, 0).(*appointmentService)
	return svc, store, notifier, events
}

func seed(t *testing.T, svc *appointmentService, status string) string {
	t.Helper()
	req := validCreate()
	req.Status = status
	a, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("seed Create() error = %v", err)
	}
	return a.ID.Hex()
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_StoresAndNotifies(t *testing.T) {
	svc, store, notifier, events := newTestService()

	a, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.Date != "2025-01-10" || a.Time != "10:00" {
		t.Errorf("date/time = %q %q, want 2025-01-10 10:00", a.Date, a.Time)
	}
	if a.Status != StatusPending {
		t.Errorf("Status = %q, want pending", a.Status)
	}
	if a.ID.IsZero() || a.CreatedAt.IsZero() {
		t.Error("store-assigned id and createdAt should be set")
	}
	if _, ok := store.items[a.ID.Hex()]; !ok {
		t.Error("appointment not persisted")
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("sms sent = %d, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.To != "" {
		t.Errorf("sms To = %q, want empty (verified number)", msg.To)
	}
	if !strings.Contains(msg.Body, "2025-01-10") || !strings.Contains(msg.Body, "10:00") {
		t.Errorf("sms body %q must contain date and time", msg.Body)
	}
	if len(events.created) != 1 || events.created[0] != a.ID.Hex() {
		t.Errorf("created events = %v", events.created)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"missing userId", func(r *CreateRequest) { r.UserID = "" }},
		{"missing patientId", func(r *CreateRequest) { r.PatientID = "" }},
		{"missing date", func(r *CreateRequest) { r.AppointmentDate = " " }},
		{"missing time", func(r *CreateRequest) { r.AppointmentTime = "" }},
		{"missing status", func(r *CreateRequest) { r.Status = "" }},
		{"missing type", func(r *CreateRequest) { r.Type = "" }},
		{"unknown status", func(r *CreateRequest) { r.Status = "done" }},
		{"unknown type", func(r *CreateRequest) { r.Type = "book" }},
		{"cancellation reason on pending", func(r *CreateRequest) { r.CancellationReason = "sick" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, notifier, _ := newTestService()
			req := validCreate()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if len(store.items) != 0 || len(notifier.sent) != 0 {
				t.Error("nothing should be stored or sent on invalid input")
			}
		})
	}
}

func TestCreate_StoreFailure(t *testing.T) {
	svc, store, notifier, _ := newTestService()
	store.createErr = errors.New("connection reset")

	a, err := svc.Create(context.Background(), validCreate())
	if err == nil || a != nil {
		t.Fatalf("Create() = %v, %v; want nil, error", a, err)
	}
	if len(notifier.sent) != 0 {
		t.Error("sms must not be sent when persistence fails")
	}
}

func TestCreate_SMSFailureIsPartialSuccess(t *testing.T) {
	svc, store, notifier, _ := newTestService()
	notifier.err = errors.New("gateway timeout")

	a, err := svc.Create(context.Background(), validCreate())
	if !errors.Is(err, ErrConfirmationNotSent) {
		t.Fatalf("err = %v, want ErrConfirmationNotSent", err)
	}
	if a == nil {
		t.Fatal("stored appointment should be returned with the error")
	}
	if _, ok := store.items[a.ID.Hex()]; !ok {
		t.Error("appointment should remain stored")
	}
}

func TestConfirmationText(t *testing.T) {
	got := ConfirmationText("", "2025-01-10", "10:00", StatusScheduled)
	want := "Hello Patient, your appointment with our clinic is confirmed on 2025-01-10 at 10:00."
	if got != want {
		t.Errorf("ConfirmationText() = %q, want %q", got, want)
	}

	pending := ConfirmationText("Asha", "2025-01-10", "10:00", StatusPending)
	if strings.Contains(pending, "confirmed") {
		t.Errorf("pending text must not claim confirmation: %q", pending)
	}
	if !strings.HasPrefix(pending, "Hello Asha,") {
		t.Errorf("pending text = %q", pending)
	}
}

// ---------------------------------------------------------------------------
// Cancel / Update / Schedule
// ---------------------------------------------------------------------------

func TestCancel_FromAnyStatus(t *testing.T) {
	for _, from := range []string{StatusPending, StatusScheduled, StatusCancelled} {
		t.Run(from, func(t *testing.T) {
			svc, _, _, events := newTestService()
			id := seed(t, svc, from)

			a, err := svc.Cancel(context.Background(), id, "patient unavailable")
			if err != nil {
				t.Fatalf("Cancel() error = %v", err)
			}
			if a.Status != StatusCancelled || a.CancellationReason != "patient unavailable" || a.Type != TypeCancel {
				t.Errorf("got status=%q reason=%q type=%q", a.Status, a.CancellationReason, a.Type)
			}
			if len(events.updated) == 0 {
				t.Error("expected an updated event")
			}
		})
	}
}

func TestCancel_EmptyReasonAccepted(t *testing.T) {
	svc, _, _, _ := newTestService()
	id := seed(t, svc, StatusPending)
	a, err := svc.Cancel(context.Background(), id, "")
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if a.CancellationReason != "" {
		t.Errorf("CancellationReason = %q", a.CancellationReason)
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.Cancel(context.Background(), primitive.NewObjectID().Hex(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_OnlySuppliedFields(t *testing.T) {
	svc, _, _, _ := newTestService()
	req := validCreate()
	req.Note = "bring reports"
	a, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	date := "2025-02-01"
	got, err := svc.Update(context.Background(), a.ID.Hex(), UpdateRequest{AppointmentDate: &date})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Date != "2025-02-01" {
		t.Errorf("Date = %q, want 2025-02-01", got.Date)
	}
	if got.Time != a.Time || got.Note != a.Note || got.Status != a.Status {
		t.Errorf("untouched fields changed: time=%q note=%q status=%q", got.Time, got.Note, got.Status)
	}
}

func TestUpdate_StatusGuard(t *testing.T) {
	tests := []struct {
		from, to string
		wantErr  error
	}{
		{StatusPending, StatusScheduled, nil},
		{StatusScheduled, StatusScheduled, nil},
		{StatusScheduled, StatusCancelled, nil},
		{StatusCancelled, StatusScheduled, ErrInvalidTransition},
		{StatusScheduled, StatusPending, ErrInvalidTransition},
		{StatusPending, "archived", ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			svc, store, _, _ := newTestService()
			id := seed(t, svc, StatusPending)
			store.items[id].Status = tt.from

			to := tt.to
			_, err := svc.Update(context.Background(), id, UpdateRequest{Status: &to})
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Update() error = %v", err)
				}
				if store.items[id].Status != tt.to {
					t.Errorf("status = %q, want %q", store.items[id].Status, tt.to)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if store.items[id].Status != tt.from {
				t.Errorf("status changed to %q on rejected transition", store.items[id].Status)
			}
		})
	}
}

func TestSchedule(t *testing.T) {
	svc, store, _, events := newTestService()
	id := seed(t, svc, StatusPending)

	doc := "Dr. Rao"
	a, err := svc.Schedule(context.Background(), id, ScheduleRequest{PrimaryPhysician: &doc})
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if a.Status != StatusScheduled || a.Type != TypeSchedule || a.PrimaryPhysician != doc {
		t.Errorf("got status=%q type=%q doctor=%q", a.Status, a.Type, a.PrimaryPhysician)
	}
	if len(events.updated) != 1 {
		t.Errorf("updated events = %v", events.updated)
	}

	store.items[id].Status = StatusCancelled
	if _, err := svc.Schedule(context.Background(), id, ScheduleRequest{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("schedule cancelled: err = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Schedule(context.Background(), "missing", ScheduleRequest{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("schedule unknown: err = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func TestListByUser_EmptyIsNotError(t *testing.T) {
	svc, _, _, _ := newTestService()
	got, err := svc.ListByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListByUser() = %v, want empty non-nil slice", got)
	}
}

func TestListByUser_StoreOrder(t *testing.T) {
	svc, _, _, _ := newTestService()
	first := seed(t, svc, StatusPending)
	second := seed(t, svc, StatusScheduled)

	got, err := svc.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 2 || got[0].ID.Hex() != first || got[1].ID.Hex() != second {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestListRecent_Summary(t *testing.T) {
	svc, store, _, _ := newTestService()
	for _, st := range []string{StatusScheduled, StatusScheduled, StatusPending, StatusCancelled, StatusPending, StatusPending} {
		seed(t, svc, st)
	}
	store.total = 250 // collection larger than the fetched page

	got, err := svc.ListRecent(context.Background())
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(got.Documents) != 6 {
		t.Fatalf("documents = %d, want 6", len(got.Documents))
	}
	if got.ScheduledCount != 2 || got.PendingCount != 3 || got.CancelledCount != 1 {
		t.Errorf("summary = %+v", got.Summary)
	}
	if got.TotalCount != 250 {
		t.Errorf("TotalCount = %d, want 250", got.TotalCount)
	}
}

func TestListRecent_PageLimit(t *testing.T) {
	store, notifier := newFakeStore(), &fakeSMS{}
	svc := New(store, notifier, nil, 3)
	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), validCreate()); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := svc.ListRecent(context.Background())
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(got.Documents) != 3 {
		t.Errorf("documents = %d, want 3", len(got.Documents))
	}
	if got.TotalCount < int64(len(got.Documents)) || got.TotalCount != 5 {
		t.Errorf("TotalCount = %d, want 5", got.TotalCount)
	}
}

func TestStats_FullCollection(t *testing.T) {
	svc, _, _, _ := newTestService()
	seed(t, svc, StatusPending)
	seed(t, svc, StatusScheduled)
	seed(t, svc, StatusScheduled)

	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := Summary{TotalCount: 3, ScheduledCount: 2, PendingCount: 1}
	if *got != want {
		t.Errorf("Stats() = %+v, want %+v", *got, want)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusScheduled, true},
		{StatusScheduled, StatusScheduled, true},
		{StatusPending, StatusCancelled, true},
		{StatusCancelled, StatusCancelled, true},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusPending, false},
		{StatusScheduled, StatusPending, false},
		{StatusPending, StatusPending, true},
		{StatusPending, "bogus", false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
