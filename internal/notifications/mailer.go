package notifications

import (
	"fmt"

	"gopkg.in/mail.v2"

	"github.com/learnledger/backend/internal/config"
)

// SMTPMailer sends email using gopkg.in/mail.v2
type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the configured SMTP server
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers an HTML email
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
