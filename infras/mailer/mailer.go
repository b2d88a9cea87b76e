package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"denta/config"
)

// EmailSender sends transactional email. Implementations can be swapped
// (SendGrid, SES, SMTP) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, message EmailMessage) (err error)
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

type sendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// New returns a SendGrid-backed sender, or a logging stub when mail is
// disabled in config.
func New(config *config.Config) EmailSender {
	if !config.Mailer.Enable || config.Mailer.APIKey == "" {
		log.Info().Msg("Mailer disabled, using stub sender")

		return &stubSender{}
	}

	log.Info().Msg("SendGrid mailer initialized")

	return &sendGridSender{
		client:    sendgrid.NewSendClient(config.Mailer.APIKey),
		fromEmail: config.Mailer.FromEmail,
		fromName:  config.Mailer.FromName,
	}
}

func (s *sendGridSender) Send(ctx context.Context, message EmailMessage) (err error) {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(message.ToName, message.To)
	email := mail.NewSingleEmail(from, message.Subject, to, message.Body, message.Body)

	response, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		log.Error().Err(err).Str("to", message.To).Msg("Failed to send email via SendGrid.")

		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Error().Int("status", response.StatusCode).Str("to", message.To).Msg("SendGrid returned error status.")

		return fmt.Errorf("SendGrid returned status %d", response.StatusCode)
	}

	log.Info().Str("to", message.To).Str("subject", message.Subject).Msg("Email sent.")

	return nil
}

type stubSender struct{}

func (s *stubSender) Send(_ context.Context, message EmailMessage) (err error) {
	log.Info().Str("to", message.To).Str("subject", message.Subject).Msg("Stub mailer, skipping send.")

	return nil
}
