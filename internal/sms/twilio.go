package sms

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Gateway sends a single SMS. The returned bool reports delivery acceptance;
// callers log it but take no further action on it.
type Gateway interface {
	Send(to, body string) (bool, error)
}

// messageCreator is the slice of the Twilio REST API the gateway uses.
// *twilio.ApiService satisfies it.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioGateway sends SMS through the Twilio Messages API.
type TwilioGateway struct {
	api  messageCreator
	from string
}

// TwilioConfig holds Twilio credentials and the sending number.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// NewTwilioGateway creates a gateway backed by the Twilio REST client.
func NewTwilioGateway(cfg TwilioConfig) *TwilioGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioGateway{api: client.Api, from: cfg.FromNumber}
}

// Send delivers one SMS. A Twilio error status on the created message is
// reported as unaccepted without an error so the caller can log and move on.
func (g *TwilioGateway) Send(to, body string) (bool, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(g.from)
	params.SetBody(body)

	msg, err := g.api.CreateMessage(params)
	if err != nil {
		return false, fmt.Errorf("twilio create message: %w", err)
	}
	if msg.Status != nil && (*msg.Status == "failed" || *msg.Status == "undelivered") {
		return false, nil
	}
	return true, nil
}
