package sms

import (
	"context"
	"fmt"
	"strings"

	"github.com/Alijeyrad/carepulse_backend/config"
)

const (
	ProviderTwilio = "twilio"
	ProviderSMSIR  = "smsir"
)

// Kind identifies the message template. Template-based gateways (sms.ir)
// resolve it to a template id; body-based gateways (Twilio) ignore it.
type Kind string

const (
	KindOTP         Kind = "otp"
	KindAppointment Kind = "appointment"
)

// Param is a named template value.
type Param struct {
	Key   string
	Value string
}

// Message is one outgoing SMS. An empty To is replaced with the configured
// verified number.
type Message struct {
	To     string
	Kind   Kind
	Body   string
	Params []Param
}

type provider interface {
	name() string
	send(ctx context.Context, msg Message) error
}

// Client sends SMS through the configured gateway.
type Client struct {
	provider       provider
	enabled        bool
	verifiedNumber string
}

// NewFromConfig creates a new SMS client from the application configuration.
// If SMS is disabled, returns a client that no-ops on all operations.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{enabled: false, verifiedNumber: cfg.VerifiedNumber}, nil
	}

	var (
		p   provider
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case ProviderTwilio, "":
		p, err = newTwilioProvider(cfg.Twilio)
	case ProviderSMSIR:
		p, err = newSMSIRProvider(cfg.SMSIR)
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return &Client{
		provider:       p,
		enabled:        true,
		verifiedNumber: cfg.VerifiedNumber,
	}, nil
}

// Send delivers msg. If SMS is disabled, this is a no-op and returns nil.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.enabled {
		return nil
	}

	if msg.To == "" {
		msg.To = c.verifiedNumber
	}
	if msg.To == "" {
		return fmt.Errorf("phone number is required")
	}
	if msg.Kind == "" {
		return fmt.Errorf("message kind is required")
	}
	if msg.Body == "" && len(msg.Params) == 0 {
		return fmt.Errorf("message body is required")
	}

	if err := c.provider.send(ctx, msg); err != nil {
		return fmt.Errorf("%s send failed: %w", c.provider.name(), err)
	}
	return nil
}

// IsEnabled returns whether SMS sending is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// VerifiedNumber is the destination used when a message has no recipient.
func (c *Client) VerifiedNumber() string {
	return c.verifiedNumber
}
