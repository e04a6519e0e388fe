// Package sender consumes expiry notices from the queue and turns each
// one into a renewal e-mail.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
)

// Transport opens authenticated SMTP sessions.
type Transport interface {
	Connect() (*smtp.Client, error)
	GetSMTPUser() string
}

// Service renders and sends expiry e-mails.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// New creates a new sender Service.
func New(transport Transport, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendExpiryNotice unmarshals a queued expiry notice and e-mails the
// user that the premium access ends today.
func (s *Service) SendExpiryNotice(body []byte) error {
	var notice models.ExpiryNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		s.log.Error("failed to unmarshal expiry notice", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{notice.Email}
	subject := "Seu acesso premium Belux expira hoje"
	bodyText := fmt.Sprintf(`Olá, %s!

Seu acesso premium ao Belux expira hoje (%s).

Renove agora para continuar acompanhando sua rotina de skincare,
suas análises faciais e o calendário de cuidados.

Equipe Belux`,
		notice.FullName, notice.ExpiresAt.Format("02/01/2006"))

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("expiry email sent", "to", to)
	return nil
}
