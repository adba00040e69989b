package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Alijeyrad/carepulse_backend/config"
)

type twilioProvider struct {
	client              *twilio.RestClient
	messagingServiceSID string
}

func newTwilioProvider(cfg config.TwilioConfig) (*twilioProvider, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio account sid and auth token required when SMS enabled")
	}
	if cfg.MessagingServiceSID == "" {
		return nil, fmt.Errorf("twilio messaging service sid required when SMS enabled")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &twilioProvider{client: client, messagingServiceSID: cfg.MessagingServiceSID}, nil
}

func (p *twilioProvider) name() string { return ProviderTwilio }

// send posts the rendered body. The Twilio SDK has no context support, so
// ctx only short-circuits already-cancelled requests.
func (p *twilioProvider) send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetMessagingServiceSid(p.messagingServiceSID)
	params.SetBody(msg.Body)

	_, err := p.client.Api.CreateMessage(params)
	return err
}
