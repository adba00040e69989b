// Package events publishes appointment domain events on NATS.
//
// Subjects carry the appointment id as their last token and the payload is
// the same id, e.g. carepulse.appointment.created.<id>.
package events

import (
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/Alijeyrad/carepulse_backend/pkg/constants"
)

// Publisher is safe to use with a nil connection; every publish is then a
// no-op.
type Publisher struct {
	nc *nats.Conn
}

func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

func (p *Publisher) AppointmentCreated(id string) error {
	return p.publish(constants.SubjectAppointmentCreated, id)
}

func (p *Publisher) AppointmentUpdated(id string) error {
	return p.publish(constants.SubjectAppointmentUpdated, id)
}

func (p *Publisher) publish(base, id string) error {
	if p == nil || p.nc == nil {
		return nil
	}
	if id == "" {
		return fmt.Errorf("publish %s: empty id", base)
	}
	if err := p.nc.Publish(Subject(base, id), []byte(id)); err != nil {
		return fmt.Errorf("publish %s: %w", base, err)
	}
	return nil
}

// Subject joins a base subject and an entity id.
func Subject(base, id string) string {
	return base + "." + id
}

// Wildcard matches every entity under base.
func Wildcard(base string) string {
	return base + ".*"
}

// IDFromMsg returns the entity id of a message, preferring the payload and
// falling back to the last subject token.
func IDFromMsg(msg *nats.Msg) (string, bool) {
	if id := strings.TrimSpace(string(msg.Data)); id != "" {
		return id, true
	}
	parts := strings.Split(msg.Subject, ".")
	if len(parts) < 4 || parts[len(parts)-1] == "" {
		return "", false
	}
	return parts[len(parts)-1], true
}
