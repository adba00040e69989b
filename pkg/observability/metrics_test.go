package observability

import (
	"context"
	"errors"
	"testing"
)

func TestMetricsWithoutProvider(t *testing.T) {
	m := Metrics()
	if m == nil {
		t.Fatal("Metrics() returned nil")
	}
	if Metrics() != m {
		t.Error("Metrics() should return the same instance")
	}

	ctx := context.Background()
	m.AppointmentCreated(ctx, "pending")
	m.Transition(ctx, "scheduled", nil)
	m.SMSSent(ctx, "otp", errors.New("gateway down"))
	m.OTPVerified(ctx, "invalid")
	m.AdminLogin(ctx, "ok")
}

func TestOutcome(t *testing.T) {
	if outcome(nil) != "ok" {
		t.Error("nil error should be ok")
	}
	if outcome(errors.New("x")) != "error" {
		t.Error("non-nil error should be error")
	}
}
