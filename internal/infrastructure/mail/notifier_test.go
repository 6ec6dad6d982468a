package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"

	"NewsAlerts/internal/config"
	"NewsAlerts/internal/ports"
)

func testConfig() config.MailConfig {
	return config.MailConfig{
		Host:       "smtp.example.com",
		Port:       465,
		Sender:     "alertas@example.com",
		Password:   "secret",
		Recipients: []string{"a@example.com", "b@example.com"},
	}
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	n := NewNotifier(testConfig(), nil)
	m, err := n.buildMessage(ports.Message{
		Subject: "Reporte de Noticias",
		Text:    "cuerpo plano",
		HTML:    "<p>cuerpo html</p>",
	})
	require.NoError(t, err)

	recipients, err := m.GetRecipients()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, recipients)
	assert.Equal(t, []string{"Reporte de Noticias"}, m.GetGenHeader(gomail.HeaderSubject))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
}

func TestBuildMessageRejectsBadSender(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Sender = "not an address"
	_, err := NewNotifier(cfg, nil).buildMessage(ports.Message{Subject: "x", Text: "y"})
	assert.Error(t, err)
}

func TestDeliverRequiresConfiguration(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Password = ""
	cfg.Recipients = nil

	err := NewNotifier(cfg, nil).Deliver(context.Background(), ports.Message{Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
	assert.Contains(t, err.Error(), "recipients")
}
