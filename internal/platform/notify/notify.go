// Package notify delivers reminder notifications to caregivers.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a single notification to deliver.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Body    string
	HTML    string
}

// Sender delivers notifications. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridSender delivers messages through the SendGrid v3 API.
type SendGridSender struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

// NewSendGridSender creates a Sender backed by SendGrid.
func NewSendGridSender(apiKey, fromName, fromAddr string) *SendGridSender {
	return &SendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	m := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, html)

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sending email to %s: %w", msg.ToEmail, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d for %s", resp.StatusCode, msg.ToEmail)
	}
	return nil
}

// LogSender writes notifications to the log instead of delivering them.
// Used in development when no SendGrid key is configured.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a Sender that only logs.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info().
		Str("to", msg.ToEmail).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("notification (not delivered, log sender)")
	return nil
}
