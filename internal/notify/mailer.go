// Package notify sends transactional email and SMS through external
// providers. Both senders sit behind interfaces so services can be tested
// without network access.
package notify

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailer sends a transactional email. html is optional.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// MailgunMailer sends through Mailgun.
type MailgunMailer struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgunMailer(domain, apiKey, sender string) *MailgunMailer {
	return &MailgunMailer{Domain: domain, APIKey: apiKey, Sender: sender}
}

func (m *MailgunMailer) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
