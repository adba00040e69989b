package app

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/internal/service/appointment"
	"github.com/Alijeyrad/carepulse_backend/pkg/email"
)

type stubAppointments struct {
	appointment.Service
	byID map[string]*repo.Appointment
}

func (s stubAppointments) Get(_ context.Context, id string) (*repo.Appointment, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	return a, nil
}

type recordingMailer struct {
	enabled bool
	sent    []email.Message
}

func (m *recordingMailer) Enabled() bool { return m.enabled }

func (m *recordingMailer) Send(_ context.Context, msg email.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func TestEmailHandler(t *testing.T) {
	id := primitive.NewObjectID()
	appts := stubAppointments{byID: map[string]*repo.Appointment{
		id.Hex(): {
			ID:               id,
			Name:             "Asha",
			Email:            "asha@example.com",
			PrimaryPhysician: "Dr. Rao",
			Date:             "2025-01-10",
			Time:             "10:00",
			Status:           appointment.StatusScheduled,
		},
		"no-email": {Name: "Ravi"},
	}}
	mailer := &recordingMailer{enabled: true}
	h := emailHandler(appts, mailer, "CarePulse")

	h(&nats.Msg{Subject: "carepulse.appointment.created." + id.Hex(), Data: []byte(id.Hex())})
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	if to := mailer.sent[0].To; len(to) != 1 || to[0] != "asha@example.com" {
		t.Errorf("To = %v, want [asha@example.com]", to)
	}

	h(&nats.Msg{Subject: "carepulse.appointment.updated.missing", Data: []byte("missing")})
	h(&nats.Msg{Subject: "carepulse.appointment.updated.no-email", Data: []byte("no-email")})
	if len(mailer.sent) != 1 {
		t.Errorf("sent %d emails after skipped events, want 1", len(mailer.sent))
	}
}

func TestStartEmailWorker_Disabled(t *testing.T) {
	subs, err := startEmailWorker(nil, nil, &recordingMailer{}, "")
	if err != nil || subs != nil {
		t.Errorf("startEmailWorker() = %v, %v; want nil, nil", subs, err)
	}
}
