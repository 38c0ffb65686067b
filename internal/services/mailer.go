package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/landlordpro/backend/internal/utils"
)

// Mailer sends notification copies by email. A nil Mailer disables the
// email channel entirely.
type Mailer interface {
	Send(toEmail, subject, body string) error
}

type sendgridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	sandbox   bool
}

func NewSendgridMailer(apiKey, fromName, fromEmail string, sandbox bool) Mailer {
	return &sendgridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		sandbox:   sandbox,
	}
}

func (m *sendgridMailer) Send(toEmail, subject, body string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail("", toEmail)
	msg := mail.NewSingleEmail(from, subject, to, body, fmt.Sprintf("<p>%s</p>", body))
	msg.TrackingSettings = &mail.TrackingSettings{
		ClickTracking: &mail.ClickTrackingSetting{
			Enable: utils.Ptr(false),
		},
	}
	if m.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}
	resp, err := m.client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
