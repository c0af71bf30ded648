package utils

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer sends transactional email through SendGrid.
type SendGridMailer struct {
	apiKey   string
	fromName string
	fromAddr string
	log      *zap.Logger
}

func NewSendGridMailer(apiKey, fromName, fromAddr string, log *zap.Logger) *SendGridMailer {
	return &SendGridMailer{apiKey: apiKey, fromName: fromName, fromAddr: fromAddr, log: log}
}

// SendEmail sends a single message with text and HTML bodies.
func (m *SendGridMailer) SendEmail(ctx context.Context, toName, toEmail, subject, textContent, htmlContent string) error {
	if m.apiKey == "" {
		return fmt.Errorf("%w: SENDGRID_API_KEY is not set", ErrNotConfigured)
	}

	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		m.log.Error("sending email", zap.String("to", toEmail), zap.Error(err))
		return err
	}

	if response.StatusCode >= 400 {
		m.log.Error("sendgrid rejected email", zap.Int("status", response.StatusCode), zap.String("body", response.Body))
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	m.log.Info("email sent", zap.String("to", toEmail), zap.Int("status", response.StatusCode))
	return nil
}
