package storage

import (
	"context"
	"fmt"

	"brasserie/config"
	"brasserie/notify-svc/internal/domain"

	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer      *gomail.Dialer
	fromName    string
	fromAddress string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
	}
}

func (m *SMTPMailer) message(mail domain.Mail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddress, m.fromName)
	if len(mail.To) > 0 {
		msg.SetHeader("To", mail.To...)
	}
	if len(mail.Bcc) > 0 {
		msg.SetHeader("Bcc", mail.Bcc...)
	}
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Text)
	if mail.HTML != "" {
		msg.AddAlternative("text/html", mail.HTML)
	}
	return msg
}

// Send opens a connection per message. Volume is a handful of mails per
// service, which does not justify holding an SMTP session open.
func (m *SMTPMailer) Send(ctx context.Context, mail domain.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(mail.To) == 0 && len(mail.Bcc) == 0 {
		return fmt.Errorf("mail %q has no recipients", mail.Subject)
	}
	if err := m.dialer.DialAndSend(m.message(mail)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
