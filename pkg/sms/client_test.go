package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/Alijeyrad/carepulse_backend/config"
)

type recordingProvider struct {
	sent []Message
	err  error
}

func (p *recordingProvider) name() string { return "recording" }

func (p *recordingProvider) send(_ context.Context, msg Message) error {
	p.sent = append(p.sent, msg)
	return p.err
}

func TestNewFromConfig_Disabled(t *testing.T) {
	client, err := NewFromConfig(config.SMSConfig{Enabled: false, VerifiedNumber: "+15550001111"})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}

	if client.IsEnabled() {
		t.Error("Expected client to be disabled")
	}
	if client.VerifiedNumber() != "+15550001111" {
		t.Errorf("VerifiedNumber() = %q", client.VerifiedNumber())
	}
}

func TestNewFromConfig_Providers(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.SMSConfig
		expectError bool
	}{
		{
			name: "twilio without credentials",
			cfg: config.SMSConfig{
				Enabled:  true,
				Provider: ProviderTwilio,
			},
			expectError: true,
		},
		{
			name: "twilio without messaging service",
			cfg: config.SMSConfig{
				Enabled:  true,
				Provider: ProviderTwilio,
				Twilio:   config.TwilioConfig{AccountSID: "AC123", AuthToken: "token"},
			},
			expectError: true,
		},
		{
			name: "twilio configured",
			cfg: config.SMSConfig{
				Enabled:  true,
				Provider: ProviderTwilio,
				Twilio: config.TwilioConfig{
					AccountSID:          "AC123",
					AuthToken:           "token",
					MessagingServiceSID: "MG123",
				},
			},
		},
		{
			name: "smsir without api key",
			cfg: config.SMSConfig{
				Enabled:  true,
				Provider: ProviderSMSIR,
			},
			expectError: true,
		},
		{
			name: "smsir configured",
			cfg: config.SMSConfig{
				Enabled:  true,
				Provider: ProviderSMSIR,
				SMSIR:    config.SMSIRConfig{APIKey: "key", SecretKey: "secret", OTPTemplateID: "100"},
			},
		},
		{
			name: "unknown provider",
			cfg: config.SMSConfig{
				Enabled:  true,
				Provider: "carrier-pigeon",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewFromConfig(tt.cfg)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !client.IsEnabled() {
				t.Error("Expected client to be enabled")
			}
		})
	}
}

func TestSend_DisabledClient(t *testing.T) {
	client := &Client{enabled: false}

	err := client.Send(context.Background(), Message{Kind: KindOTP, Body: "hi"})
	if err != nil {
		t.Errorf("Expected no error for disabled client, got: %v", err)
	}
}

func TestSend_DefaultsToVerifiedNumber(t *testing.T) {
	p := &recordingProvider{}
	client := &Client{provider: p, enabled: true, verifiedNumber: "+15550001111"}

	if err := client.Send(context.Background(), Message{Kind: KindOTP, Body: "code"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(p.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(p.sent))
	}
	if p.sent[0].To != "+15550001111" {
		t.Errorf("To = %q, want verified number", p.sent[0].To)
	}
}

func TestSend_Validation(t *testing.T) {
	tests := []struct {
		name     string
		verified string
		msg      Message
	}{
		{"no recipient at all", "", Message{Kind: KindOTP, Body: "x"}},
		{"missing kind", "+15550001111", Message{Body: "x"}},
		{"missing body and params", "+15550001111", Message{Kind: KindAppointment}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &recordingProvider{}
			client := &Client{provider: p, enabled: true, verifiedNumber: tt.verified}

			if err := client.Send(context.Background(), tt.msg); err == nil {
				t.Error("Expected error but got nil")
			}
			if len(p.sent) != 0 {
				t.Error("provider must not be called on invalid input")
			}
		})
	}
}

func TestSend_WrapsProviderError(t *testing.T) {
	boom := errors.New("gateway down")
	client := &Client{provider: &recordingProvider{err: boom}, enabled: true, verifiedNumber: "+1"}

	err := client.Send(context.Background(), Message{Kind: KindOTP, Body: "x"})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}

func TestSMSIRTemplateFor(t *testing.T) {
	p, err := newSMSIRProvider(config.SMSIRConfig{APIKey: "k", OTPTemplateID: "100"})
	if err != nil {
		t.Fatalf("newSMSIRProvider failed: %v", err)
	}

	if id, err := p.templateFor(KindOTP); err != nil || id != "100" {
		t.Errorf("templateFor(otp) = %q, %v", id, err)
	}
	if _, err := p.templateFor(KindAppointment); err == nil {
		t.Error("expected error for unconfigured appointment template")
	}
}
