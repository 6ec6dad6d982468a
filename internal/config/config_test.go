package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(openAIKeyEnv, "")
	t.Setenv(eventRegistryKeyEnv, "")

	cfg := Load("")

	assert.Equal(t, "America/Santiago", cfg.Scheduler.Timezone)
	assert.Equal(t, "America/Santiago", cfg.Scheduler.Location().String())
	assert.Equal(t, []string{"0 8 * * *", "0 18 * * *"}, cfg.Scheduler.CronExpressions)
	assert.Equal(t, 100, cfg.Matching.DomainLimit)
	assert.False(t, cfg.Matching.IndustryMustMatch)
	require.Len(t, cfg.Sources, 3)
	assert.Equal(t, "df.cl", cfg.Sources[0].Host)
	assert.Equal(t, 60, cfg.Classifier.BatchSize)
	assert.False(t, cfg.Classifier.Active())
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
scheduler:
  timezone: UTC
matching:
  domainLimit: 5
  industryMustMatch: true
sources:
  - host: biobiochile.cl
    label: BioBio
    scanner: rss
    options:
      feedUrl: https://www.biobiochile.cl/rss
classifier:
  enabled: false
mail:
  recipients: [file@example.org]
`)
	t.Setenv(openAIKeyEnv, "sk-test")
	t.Setenv(senderEnv, "alerts@example.org")
	t.Setenv(recipientEnv, "a@example.org")
	t.Setenv(secondRecipientEnv, "b@example.org")
	t.Setenv(appPasswordEnv, "secret")
	t.Setenv(hoursOverrideEnv, "6")

	cfg := Load(path)

	assert.Equal(t, "UTC", cfg.Scheduler.Location().String())
	assert.Equal(t, 5, cfg.Matching.DomainLimit)
	assert.True(t, cfg.Matching.IndustryMustMatch)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "https://www.biobiochile.cl/rss", cfg.Sources[0].Options["feedUrl"])
	assert.Equal(t, "sk-test", cfg.Classifier.APIKey)
	assert.False(t, cfg.Classifier.Active())
	assert.Equal(t, "gpt-4o-mini", cfg.Classifier.Model)
	assert.Equal(t, []string{"a@example.org", "b@example.org"}, cfg.Mail.Recipients)
	assert.Equal(t, 6, cfg.Window.OverrideHours)
	assert.NoError(t, cfg.Mail.Validate())
}

func TestLoadClassifierSwitch(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(openAIKeyEnv, "sk-test")

	tests := []struct {
		name      string
		body      string
		active    bool
		batchSize int
	}{
		{name: "section absent", body: "logging:\n  level: info\n", active: true, batchSize: 60},
		{name: "explicitly disabled", body: "classifier:\n  enabled: false\n", active: false, batchSize: 60},
		{name: "explicitly enabled", body: "classifier:\n  enabled: true\n", active: true, batchSize: 60},
		{name: "tuning only", body: "classifier:\n  batchSize: 30\n", active: true, batchSize: 30},
		{name: "model only", body: "classifier:\n  model: gpt-4o\n", active: true, batchSize: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load(writeConfig(t, tt.body))
			assert.Equal(t, tt.active, cfg.Classifier.Active())
			assert.Equal(t, tt.batchSize, cfg.Classifier.BatchSize)
		})
	}
}

func TestLoadZeroHoursOverrideClampsToOne(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(hoursOverrideEnv, "0")

	cfg := Load("")
	assert.Equal(t, 1, cfg.Window.OverrideHours)

	t.Setenv(hoursOverrideEnv, "-4")
	cfg = Load("")
	assert.Equal(t, 0, cfg.Window.OverrideHours)
}

func TestLoadFallsBackOnBadInput(t *testing.T) {
	t.Setenv(hoursOverrideEnv, "abc")

	cfg := Load(writeConfig(t, "scheduler: [not, a, mapping"))
	assert.Equal(t, 100, cfg.Matching.DomainLimit)
	assert.Equal(t, 0, cfg.Window.OverrideHours)

	cfg = Load(writeConfig(t, "scheduler:\n  timezone: Mars/Olympus\n"))
	assert.Equal(t, "America/Santiago", cfg.Scheduler.Timezone)
}

func TestMailValidate(t *testing.T) {
	t.Parallel()

	err := MailConfig{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sender")
	assert.Contains(t, err.Error(), "recipients")
}
