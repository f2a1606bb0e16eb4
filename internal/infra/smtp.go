package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"inventario/internal/config"

	"github.com/jordan-wright/email"
)

// ErrMailerNotConfigured is returned when SMTP_HOST is empty.
var ErrMailerNotConfigured = errors.New("mailer: SMTP not configured")

// Mailer wraps SMTP configuration for sending reports as attachments.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

func (m *Mailer) Configured() bool { return m.host != "" }

// SendReport mails body to a single recipient, attaching attachmentPath when set.
func (m *Mailer) SendReport(to, subject, body, attachmentPath string) error {
	if !m.Configured() {
		return ErrMailerNotConfigured
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachmentPath != "" {
		if _, err := e.AttachFile(attachmentPath); err != nil {
			return fmt.Errorf("mailer: attach report: %w", err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}
