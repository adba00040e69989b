// Package email delivers patient notifications over SMTP.
package email

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/Alijeyrad/carepulse_backend/config"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Client struct {
	cfg Config
	d   dialer
}

func NewFromCentral(cfg config.EmailConfig) (*Client, error) {
	return New(FromCentralConfig(cfg))
}

func New(cfg Config) (*Client, error) {
	if cfg.Enabled {
		if strings.TrimSpace(cfg.From) == "" {
			return nil, ErrInvalidMessage{Reason: "email.from is required when email is enabled"}
		}
		if cfg.Host == "" {
			return nil, ErrInvalidMessage{Reason: "email.smtp.host is required when email is enabled"}
		}
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseTLS
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &Client{cfg: cfg, d: d}, nil
}

// Enabled reports whether Send will attempt delivery.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.Enabled
}

// Send delivers m, giving up when ctx ends or the configured timeout passes,
// whichever is first. gomail has no context support, so an abandoned
// delivery may still complete in the background.
func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	msg, err := buildMessage(c.cfg.From, m)
	if err != nil {
		return err
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- c.d.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return ErrSend{Err: err}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildMessage(from string, m Message) (*gomail.Message, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return nil, ErrInvalidMessage{Reason: "from is required"}
	}
	to := cleanAddrs(m.To)
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}
	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		return nil, ErrInvalidMessage{Reason: "subject is required"}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	if r := strings.TrimSpace(m.ReplyTo); r != "" {
		msg.SetHeader("Reply-To", r)
	}
	for k, v := range m.Headers {
		if k, v = strings.TrimSpace(k), strings.TrimSpace(v); k != "" && v != "" {
			msg.SetHeader(k, v)
		}
	}

	hasText := strings.TrimSpace(m.TextBody) != ""
	hasHTML := strings.TrimSpace(m.HTMLBody) != ""
	switch {
	case hasText && hasHTML:
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	case hasHTML:
		msg.SetBody("text/html", m.HTMLBody)
	case hasText:
		msg.SetBody("text/plain", m.TextBody)
	default:
		return nil, ErrInvalidMessage{Reason: "a text or HTML body is required"}
	}
	return msg, nil
}

func cleanAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
