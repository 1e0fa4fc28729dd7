package notify

import (
	"log"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender dispatches a text alert. Callers treat it as best-effort.
type SMSSender interface {
	Send(body string) error
}

// TwilioSender sends through Twilio. The recipient is fixed at startup:
// new-listing alerts go to a single configured number.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	to     string
}

func NewTwilioSender(accountSID, authToken, from, to string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: from, to: to}
}

func (s *TwilioSender) Send(body string) error {
	params := &api.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(s.to)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}

// NoopSender is used when Twilio credentials are absent so the listing
// flow still works in development.
type NoopSender struct{}

func (NoopSender) Send(body string) error {
	log.Printf("SMS disabled, would have sent: %s", body)
	return nil
}
