package services

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/virtualflux/mht-backend/internal/config"
)

// SMSService sends plain SMS through Twilio. Used as an optional second
// channel for the reminder digest.
type SMSService struct {
	client *twilio.RestClient
	from   string
}

// NewSMSService creates the Twilio client, or errors when credentials are
// not configured.
func NewSMSService(cfg *config.Config) (*SMSService, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
		return nil, fmt.Errorf("missing Twilio credentials in configuration")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &SMSService{
		client: client,
		from:   cfg.TwilioFromNumber,
	}, nil
}

// SendSMS sends a text message to the given number.
func (t *SMSService) SendSMS(to, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(to)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("failed to send SMS: %v", err)
		return err
	}

	log.Printf("SMS sent, SID: %s", *resp.Sid)
	return nil
}
