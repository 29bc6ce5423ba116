package sms

import (
	"context"
	"fmt"

	"patient-appointment-service/config"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends SMS through the Twilio Programmable Messaging API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	log    *logrus.Logger
}

func NewTwilioSender(cfg config.SMSConfig, log *logrus.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioSender{
		client: client,
		from:   cfg.FromNumber,
		log:    log,
	}
}

func (s *TwilioSender) Send(ctx context.Context, to string, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}

	if resp.Sid != nil {
		s.log.Infof("SMS dispatched to %s (sid=%s)", to, *resp.Sid)
	}
	return nil
}
