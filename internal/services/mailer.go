package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

// EmailMessage is a fully-prepared outbound email
type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer abstracts the email provider. Send returns the provider message id
// for the dispatched email.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) (string, error)
}

// SMTPConfig holds email provider configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// smtpMailer implements Mailer over plain SMTP
type smtpMailer struct {
	config *SMTPConfig
}

// NewSMTPMailer creates a Mailer backed by the configured SMTP relay
func NewSMTPMailer(config *SMTPConfig) Mailer {
	return &smtpMailer{config: config}
}

// Send delivers one email to every address in msg.To in a single provider
// call and returns the generated message id.
func (m *smtpMailer) Send(ctx context.Context, msg *EmailMessage) (string, error) {
	if m.config == nil || m.config.Host == "" {
		return "", fmt.Errorf("SMTP configuration not set")
	}

	if len(msg.To) == 0 {
		return "", fmt.Errorf("no recipients")
	}

	messageID := m.newMessageID()
	from := fmt.Sprintf("%s <%s>", m.config.FromName, m.config.FromEmail)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, m.config.FromEmail, msg.To, []byte(b.String())); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return messageID, nil
}

// newMessageID builds an RFC 5322 style message id from the sender domain
func (m *smtpMailer) newMessageID() string {
	domain := m.config.FromEmail
	if at := strings.LastIndex(domain, "@"); at >= 0 {
		domain = domain[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
