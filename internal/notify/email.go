package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailClient is satisfied by *sendgrid.Client.
type MailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// Email sends events to the agency inbox through SendGrid.
type Email struct {
	client MailClient
	from   *mail.Email
	to     *mail.Email
}

func NewEmail(client MailClient, from, to string) *Email {
	return &Email{
		client: client,
		from:   mail.NewEmail("Tuition Site", from),
		to:     mail.NewEmail("Admissions", to),
	}
}

// NewSendGridEmail builds an Email notifier backed by the real SendGrid API.
func NewSendGridEmail(apiKey, from, to string) *Email {
	return NewEmail(sendgrid.NewSendClient(apiKey), from, to)
}

func (e *Email) Notify(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body := event.Body()
	msg := mail.NewSingleEmail(e.from, event.Title(), e.to, body, "<pre>"+body+"</pre>")

	resp, err := e.client.Send(msg)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("send email: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
