package facades

import (
	"fmt"

	mail "gopkg.in/mail.v2"

	"github.com/bookcase-labs/library-catalog/internal/logger"
)

// SMTPMailerFacade delivers outbound notification email over SMTP.
// Callers treat delivery as fire-and-forget: a failed send is logged,
// never propagated to the request that triggered it.
type SMTPMailerFacade struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailerFacade creates a new mailer facade.
func NewSMTPMailerFacade(host string, port int, username, password, from string) *SMTPMailerFacade {
	return &SMTPMailerFacade{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a single message.
func (f *SMTPMailerFacade) Send(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", f.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(f.host, f.port, f.username, f.password)
	if err := d.DialAndSend(m); err != nil {
		logger.Log.Errorw("failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
