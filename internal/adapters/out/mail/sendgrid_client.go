// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient sends transactional mail (password reset codes)
// through SendGrid.
type SendGridClient struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridClient(apiKey, from string) *SendGridClient {
	return &SendGridClient{
		apiKey:   apiKey,
		from:     from,
		fromName: "Storefront",
	}
}

func (c *SendGridClient) Send(ctx context.Context, to, subject, body string) error {
	if c == nil || c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if c.from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	fromEmail := mail.NewEmail(c.fromName, c.from)
	toEmail := mail.NewEmail("", to)

	plainTextContent := body
	htmlContent := fmt.Sprintf("<pre>%s</pre>", body)

	message := mail.NewSingleEmail(
		fromEmail,
		subject,
		toEmail,
		plainTextContent,
		htmlContent,
	)

	client := sendgrid.NewSendClient(c.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf(
			"sendgrid send failed: status=%d, body=%s",
			response.StatusCode,
			response.Body,
		)
	}

	log.Printf("[sendgrid] mail sent: status=%d to=%s subject=%s",
		response.StatusCode, to, subject)

	return nil
}
