package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/carepulse_backend/config"
	"github.com/Alijeyrad/carepulse_backend/internal/service/appointment"
	"github.com/Alijeyrad/carepulse_backend/pkg/constants"
	"github.com/Alijeyrad/carepulse_backend/pkg/email"
	"github.com/Alijeyrad/carepulse_backend/pkg/events"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc          fx.Lifecycle
	NC          *nats.Conn
	Appointment appointment.Service
	Email       *email.Client
	Cfg         *config.Config
}

// Mailer is the outbound email the worker needs.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, m email.Message) error
}

func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		return
	}
	var subs []*nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			subs, err = startEmailWorker(p.NC, p.Appointment, p.Email, p.Cfg.Observability.ServiceName)
			return err
		},
		OnStop: func(ctx context.Context) error {
			var errs []error
			for _, s := range subs {
				errs = append(errs, s.Unsubscribe())
			}
			return errors.Join(errs...)
		},
	})
}

// ---------------------------------------------------------------------------
// email_worker
// ---------------------------------------------------------------------------

func startEmailWorker(nc *nats.Conn, appts appointment.Service, mailer Mailer, appName string) ([]*nats.Subscription, error) {
	if mailer == nil || !mailer.Enabled() {
		slog.Info("email_worker: email disabled, not started")
		return nil, nil
	}

	handler := emailHandler(appts, mailer, appName)

	var subs []*nats.Subscription
	for _, base := range []string{constants.SubjectAppointmentCreated, constants.SubjectAppointmentUpdated} {
		sub, err := nc.Subscribe(events.Wildcard(base), handler)
		if err != nil {
			slog.Error("email_worker: subscribe failed", "subject", base, "err", err)
			return subs, err
		}
		subs = append(subs, sub)
	}

	slog.Info("email_worker: started")
	return subs, nil
}

func emailHandler(appts appointment.Service, mailer Mailer, appName string) nats.MsgHandler {
	return func(msg *nats.Msg) {
		id, ok := events.IDFromMsg(msg)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		appt, err := appts.Get(ctx, id)
		if err != nil {
			slog.Warn("email_worker: appointment not found", "id", id, "err", err)
			return
		}
		if appt.Email == "" {
			return
		}

		m := email.BuildAppointmentEmail(email.AppointmentEmailData{
			Name:               appt.Name,
			Email:              appt.Email,
			Doctor:             appt.PrimaryPhysician,
			Date:               appt.Date,
			Time:               appt.Time,
			Status:             appt.Status,
			CancellationReason: appt.CancellationReason,
			AppName:            appName,
		})
		if err := mailer.Send(ctx, m); err != nil {
			slog.Warn("email_worker: send failed", "id", id, "err", err)
		}
	}
}
