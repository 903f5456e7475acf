package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/pkg/config"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain-text mail through an SMTP relay.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	send sendFunc
}

var _ providers.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer for the configured relay.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// Send delivers one message to all recipients.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(to) == 0 {
		return fmt.Errorf("mail: no recipients")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	return m.send(m.cfg.Addr(), auth, m.cfg.FromAddress, to, m.message(to, subject, body))
}

func (m *SMTPMailer) message(to []string, subject, body string) []byte {
	var b strings.Builder
	if m.cfg.FromName != "" {
		fmt.Fprintf(&b, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.FromAddress)
	} else {
		fmt.Fprintf(&b, "From: %s\r\n", m.cfg.FromAddress)
	}
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
