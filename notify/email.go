package notify

import (
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailClient sends notification mail through SendGrid.
type EmailClient struct {
	client *sendgrid.Client
	sender string
}

func NewEmailClient(apiKey, sender string) *EmailClient {
	return &EmailClient{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendMessage mails the message body to the recipient. The first line of
// the message is used as the subject.
func (e *EmailClient) SendMessage(recipient, message string) bool {
	subject := message
	body := message
	if idx := strings.Index(message, "\n"); idx > 0 {
		subject = message[:idx]
		body = message[idx+1:]
	}

	from := mail.NewEmail("Donasi", e.sender)
	to := mail.NewEmail(recipient, recipient)
	msg := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := e.client.Send(msg)
	if err != nil {
		log.Printf("Email send to %s failed: %v", recipient, err)
		return false
	}
	if resp.StatusCode >= 400 {
		log.Printf("Email send to %s failed: status %d", recipient, resp.StatusCode)
		return false
	}
	return true
}
