package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Domain holds the business counters. Instruments come from the global
// meter provider, so they are no-ops until InitTelemetry runs.
type Domain struct {
	appointments metric.Int64Counter
	transitions  metric.Int64Counter
	sms          metric.Int64Counter
	otpChecks    metric.Int64Counter
	adminLogins  metric.Int64Counter
}

var (
	domainOnce sync.Once
	domain     *Domain
)

// Metrics returns the process-wide domain counters.
func Metrics() *Domain {
	domainOnce.Do(func() {
		m := otel.Meter(tracerName)
		domain = &Domain{}
		domain.appointments, _ = m.Int64Counter("carepulse_appointments_created_total",
			metric.WithDescription("Appointments persisted, by initial status"))
		domain.transitions, _ = m.Int64Counter("carepulse_appointment_transitions_total",
			metric.WithDescription("Appointment status changes, by target status and outcome"))
		domain.sms, _ = m.Int64Counter("carepulse_sms_sent_total",
			metric.WithDescription("SMS dispatch attempts, by kind and outcome"))
		domain.otpChecks, _ = m.Int64Counter("carepulse_otp_verifications_total",
			metric.WithDescription("OTP verification attempts, by outcome"))
		domain.adminLogins, _ = m.Int64Counter("carepulse_admin_logins_total",
			metric.WithDescription("Admin passkey logins, by outcome"))
	})
	return domain
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (d *Domain) AppointmentCreated(ctx context.Context, status string) {
	d.appointments.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

func (d *Domain) Transition(ctx context.Context, to string, err error) {
	d.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("to", to),
		attribute.String("outcome", outcome(err)),
	))
}

func (d *Domain) SMSSent(ctx context.Context, kind string, err error) {
	d.sms.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome(err)),
	))
}

// OTPVerified records result, one of "ok", "invalid", "expired", "locked".
func (d *Domain) OTPVerified(ctx context.Context, result string) {
	d.otpChecks.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (d *Domain) AdminLogin(ctx context.Context, result string) {
	d.adminLogins.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
