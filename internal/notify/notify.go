// Package notify sends announcement broadcasts over Twilio SMS.
package notify

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/MITHU9/forum-hub-backend/internal/config"
)

// Notifier broadcasts short messages to the configured recipients.
type Notifier interface {
	Broadcast(subject, body string)
}

// NewFromConfig returns a Twilio-backed notifier, or a no-op one when
// Twilio credentials are not configured.
func NewFromConfig(cfg *config.Config) Notifier {
	if cfg.TwilioAccountSID == "" || len(cfg.AnnounceSMSTo) == 0 {
		return noop{}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &smsNotifier{client: client, from: cfg.TwilioFrom, to: cfg.AnnounceSMSTo}
}

type noop struct{}

func (noop) Broadcast(string, string) {}

type smsNotifier struct {
	client *twilio.RestClient
	from   string
	to     []string
}

// Broadcast sends the announcement to every recipient. Failures are
// logged, not surfaced: the announcement itself is already committed and
// SMS delivery is best effort.
func (n *smsNotifier) Broadcast(subject, body string) {
	text := fmt.Sprintf("%s\n\n%s", subject, body)
	for _, to := range n.to {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(n.from)
		params.SetBody(text)

		if _, err := n.client.Api.CreateMessage(params); err != nil {
			log.WithError(err).WithField("to", to).Warn("announcement SMS failed")
		}
	}
}
