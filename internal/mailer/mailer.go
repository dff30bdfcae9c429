package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/lavka-market/lavka-backend/pkg/config"
	"github.com/lavka-market/lavka-backend/pkg/logger"
)

// Mailer delivers transactional mail.
type Mailer interface {
	SendMagicLink(ctx context.Context, email, link string) error
}

// New picks the delivery backend from configuration. Console mode just logs
// the link, which is what local development wants.
func New(cfg config.MailConfig, logg *logger.Logger) (Mailer, error) {
	switch strings.ToLower(cfg.Mode) {
	case "console", "":
		return &consoleMailer{logg: logg}, nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp mode requires LAVKA_SMTP_HOST")
		}
		return &smtpMailer{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown mail mode %q", cfg.Mode)
	}
}

type consoleMailer struct {
	logg *logger.Logger
}

func (m *consoleMailer) SendMagicLink(ctx context.Context, email, link string) error {
	ctx = m.logg.WithFields(ctx, map[string]any{"email": email, "link": link})
	m.logg.Info(ctx, "magic link issued")
	return nil
}

type smtpMailer struct {
	cfg config.MailConfig
}

func (m *smtpMailer) SendMagicLink(_ context.Context, email, link string) error {
	body := buildMagicLinkMessage(m.cfg.From, email, link)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" && m.cfg.SMTPPassword != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, body); err != nil {
		return fmt.Errorf("send magic link mail: %w", err)
	}
	return nil
}

func buildMagicLinkMessage(from, to, link string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Your login link\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Click to sign in: %s\r\n", link)
	return []byte(b.String())
}
