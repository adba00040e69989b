package sms

import (
	"context"
	"fmt"

	"github.com/arsmn/go-smsir/smsir"

	"github.com/Alijeyrad/carepulse_backend/config"
)

type smsirProvider struct {
	client    *smsir.Client
	templates map[Kind]string
}

func newSMSIRProvider(cfg config.SMSIRConfig) (*smsirProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}

	return &smsirProvider{
		client: smsir.NewClient().WithAuthentication(cfg.APIKey, cfg.SecretKey),
		templates: map[Kind]string{
			KindOTP:         cfg.OTPTemplateID,
			KindAppointment: cfg.AppointmentTemplateID,
		},
	}, nil
}

func (p *smsirProvider) name() string { return ProviderSMSIR }

func (p *smsirProvider) templateFor(k Kind) (string, error) {
	id := p.templates[k]
	if id == "" {
		return "", fmt.Errorf("no sms.ir template configured for %q", k)
	}
	return id, nil
}

// send uses the ultra-fast template API; Body is not transmitted.
func (p *smsirProvider) send(ctx context.Context, msg Message) error {
	templateID, err := p.templateFor(msg.Kind)
	if err != nil {
		return err
	}

	params := make([]smsir.UltraFastParameter, 0, len(msg.Params))
	for _, prm := range msg.Params {
		params = append(params, smsir.UltraFastParameter{Key: prm.Key, Value: prm.Value})
	}

	_, err = p.client.Verification.UltraFastSend(ctx, &smsir.UltraFastSendRequest{
		Mobile:     msg.To,
		TemplateID: templateID,
		Parameters: params,
	})
	return err
}
