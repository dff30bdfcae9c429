package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavka-market/lavka-backend/pkg/config"
	"github.com/lavka-market/lavka-backend/pkg/logger"
)

func TestNew_ModeSelection(t *testing.T) {
	logg := logger.New(logger.Options{})

	m, err := New(config.MailConfig{Mode: "console"}, logg)
	require.NoError(t, err)
	require.IsType(t, &consoleMailer{}, m)

	_, err = New(config.MailConfig{Mode: "smtp"}, logg)
	require.Error(t, err, "smtp mode without a host is a misconfiguration")

	m, err = New(config.MailConfig{Mode: "smtp", SMTPHost: "mail.internal"}, logg)
	require.NoError(t, err)
	require.IsType(t, &smtpMailer{}, m)

	_, err = New(config.MailConfig{Mode: "carrier-pigeon"}, logg)
	require.Error(t, err)
}

func TestConsoleMailer_LogsLink(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{Output: &buf})

	m, err := New(config.MailConfig{Mode: "console"}, logg)
	require.NoError(t, err)

	require.NoError(t, m.SendMagicLink(context.Background(), "alice@example.com", "http://localhost/auth/finish?token=abc"))
	assert.Contains(t, buf.String(), "alice@example.com")
	assert.Contains(t, buf.String(), "token=abc")
}

func TestBuildMagicLinkMessage(t *testing.T) {
	msg := string(buildMagicLinkMessage("no-reply@lavka.example", "alice@example.com", "http://localhost/x"))
	assert.Contains(t, msg, "To: alice@example.com\r\n")
	assert.Contains(t, msg, "Subject: Your login link\r\n")
	assert.Contains(t, msg, "http://localhost/x")
}
