package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone     = "America/Santiago"
	configPathEnv       = "NEWSALERTS_CONFIG"
	logLevelEnv         = "LOG_LEVEL"
	eventRegistryKeyEnv = "ER_API_KEY"
	openAIKeyEnv        = "OPENAI_API_KEY"
	openAIModelEnv      = "OPENAI_MODEL"
	senderEnv           = "REMITENTE"
	recipientEnv        = "DESTINATARIO"
	secondRecipientEnv  = "DESTINATARIO2"
	appPasswordEnv      = "APP_PASSWORD"
	hoursOverrideEnv    = "HOURS_BACK_OVERRIDE"
	telegramTokenEnv    = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv   = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig       `yaml:"logging"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Window        WindowConfig        `yaml:"window"`
	Matching      MatchingConfig      `yaml:"matching"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Sources       []SourceConfig      `yaml:"sources"`
	EventRegistry EventRegistryConfig `yaml:"eventRegistry"`
	Classifier    ClassifierConfig    `yaml:"classifier"`
	Mail          MailConfig          `yaml:"mail"`
	Telegram      TelegramConfig      `yaml:"telegram"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig defines when the digest should run.
type SchedulerConfig struct {
	CronExpressions []string       `yaml:"cronExpressions"`
	Timezone        string         `yaml:"timezone"`
	location        *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WindowConfig sizes the look-back window. OverrideHours > 0 wins.
type WindowConfig struct {
	MorningHours  int `yaml:"morningHours"`
	EveningHours  int `yaml:"eveningHours"`
	OverrideHours int `yaml:"overrideHours"`
}

// MatchingConfig tunes item expansion.
type MatchingConfig struct {
	DomainLimit       int  `yaml:"domainLimit"`
	IndustryMustMatch bool `yaml:"industryMustMatch"`
}

// CatalogConfig points at a catalog file; empty uses the built-in catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// SourceConfig describes one news source in priority order.
type SourceConfig struct {
	Host    string            `yaml:"host"`
	Label   string            `yaml:"label"`
	Scanner string            `yaml:"scanner"`
	Options map[string]string `yaml:"options"`
}

// EventRegistryConfig defines how to reach the Event Registry API.
type EventRegistryConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	MaxItems int    `yaml:"maxItems"`
}

// ClassifierConfig defines how to contact the classification model.
type ClassifierConfig struct {
	Enabled           *bool   `yaml:"enabled"`
	Endpoint          string  `yaml:"endpoint"`
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"apiKey"`
	BatchSize         int     `yaml:"batchSize"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	TimeoutSeconds    int     `yaml:"timeoutSeconds"`
}

// IsEnabled reports the enabled switch; an unset switch means on.
func (c ClassifierConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Active reports whether the classifier should be wired at all.
func (c ClassifierConfig) Active() bool {
	return c.IsEnabled() && strings.TrimSpace(c.APIKey) != ""
}

// MailConfig wires SMTP delivery of the digest.
type MailConfig struct {
	Host          string   `yaml:"host"`
	Port          int      `yaml:"port"`
	Sender        string   `yaml:"sender"`
	Password      string   `yaml:"password"`
	Recipients    []string `yaml:"recipients"`
	SubjectPrefix string   `yaml:"subjectPrefix"`
}

// Validate reports missing delivery settings.
func (m MailConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(m.Sender) == "" {
		errs = append(errs, errors.New("mail sender is not configured"))
	}
	if strings.TrimSpace(m.Password) == "" {
		errs = append(errs, errors.New("mail password is not configured"))
	}
	if len(m.Recipients) == 0 {
		errs = append(errs, errors.New("mail recipients are not configured"))
	}
	return errors.Join(errs...)
}

// TelegramConfig wires the optional Telegram channel.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether both token and chat are present.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Load reads YAML configuration (if present) and applies .env and environment overrides.
// An empty path falls back to NEWSALERTS_CONFIG.
func Load(path string) Config {
	cfg := defaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: cannot read .env: %v", err)
	}

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := strings.TrimSpace(os.Getenv(eventRegistryKeyEnv)); v != "" {
		c.EventRegistry.APIKey = v
	}

	if v := strings.TrimSpace(os.Getenv(openAIKeyEnv)); v != "" {
		c.Classifier.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(openAIModelEnv)); v != "" {
		c.Classifier.Model = v
	}

	if v := strings.TrimSpace(os.Getenv(senderEnv)); v != "" {
		c.Mail.Sender = v
	}
	if v := strings.TrimSpace(os.Getenv(appPasswordEnv)); v != "" {
		c.Mail.Password = v
	}
	var recipients []string
	for _, key := range []string{recipientEnv, secondRecipientEnv} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			recipients = append(recipients, v)
		}
	}
	if len(recipients) > 0 {
		c.Mail.Recipients = recipients
	}

	if v := strings.TrimSpace(os.Getenv(hoursOverrideEnv)); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours >= 0 {
			c.Window.OverrideHours = max(1, hours)
		}
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		tz = defaultTimezone
		if loc, err = time.LoadLocation(defaultTimezone); err != nil {
			loc = time.UTC
		}
	}
	c.Scheduler.Timezone = tz
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if len(override.Scheduler.CronExpressions) > 0 {
		base.Scheduler.CronExpressions = override.Scheduler.CronExpressions
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Window.MorningHours > 0 {
		base.Window.MorningHours = override.Window.MorningHours
	}
	if override.Window.EveningHours > 0 {
		base.Window.EveningHours = override.Window.EveningHours
	}
	if override.Window.OverrideHours > 0 {
		base.Window.OverrideHours = override.Window.OverrideHours
	}

	if override.Matching.DomainLimit != 0 {
		base.Matching.DomainLimit = override.Matching.DomainLimit
	}
	base.Matching.IndustryMustMatch = base.Matching.IndustryMustMatch || override.Matching.IndustryMustMatch

	if override.Catalog.Path != "" {
		base.Catalog.Path = override.Catalog.Path
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	if override.EventRegistry.Endpoint != "" {
		base.EventRegistry.Endpoint = override.EventRegistry.Endpoint
	}
	if override.EventRegistry.APIKey != "" {
		base.EventRegistry.APIKey = override.EventRegistry.APIKey
	}
	if override.EventRegistry.MaxItems > 0 {
		base.EventRegistry.MaxItems = override.EventRegistry.MaxItems
	}

	base.Classifier = mergeClassifier(base.Classifier, override.Classifier)

	if override.Mail.Host != "" {
		base.Mail.Host = override.Mail.Host
	}
	if override.Mail.Port > 0 {
		base.Mail.Port = override.Mail.Port
	}
	if override.Mail.Sender != "" {
		base.Mail.Sender = override.Mail.Sender
	}
	if override.Mail.Password != "" {
		base.Mail.Password = override.Mail.Password
	}
	if len(override.Mail.Recipients) > 0 {
		base.Mail.Recipients = override.Mail.Recipients
	}
	if override.Mail.SubjectPrefix != "" {
		base.Mail.SubjectPrefix = override.Mail.SubjectPrefix
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != "" {
		base.Telegram.ChatID = override.Telegram.ChatID
	}

	return base
}

// mergeClassifier copies Enabled only when the file states it.
func mergeClassifier(base, override ClassifierConfig) ClassifierConfig {
	if override.Enabled != nil {
		enabled := *override.Enabled
		base.Enabled = &enabled
	}
	if override.Endpoint != "" {
		base.Endpoint = override.Endpoint
	}
	if override.Model != "" {
		base.Model = override.Model
	}
	if override.APIKey != "" {
		base.APIKey = override.APIKey
	}
	if override.BatchSize > 0 {
		base.BatchSize = override.BatchSize
	}
	if override.RequestsPerSecond > 0 {
		base.RequestsPerSecond = override.RequestsPerSecond
	}
	if override.TimeoutSeconds > 0 {
		base.TimeoutSeconds = override.TimeoutSeconds
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{
			CronExpressions: []string{"0 8 * * *", "0 18 * * *"},
			Timezone:        defaultTimezone,
		},
		Window:   WindowConfig{MorningHours: 14, EveningHours: 10},
		Matching: MatchingConfig{DomainLimit: 100},
		Sources: []SourceConfig{
			{Host: "df.cl", Label: "Diario Financiero", Scanner: "eventregistry"},
			{Host: "latercera.com", Label: "La Tercera", Scanner: "eventregistry"},
			{Host: "emol.com", Label: "EMOL", Scanner: "eventregistry"},
		},
		EventRegistry: EventRegistryConfig{
			Endpoint: "https://eventregistry.org/api/v1",
			MaxItems: 1000,
		},
		Classifier: ClassifierConfig{
			Endpoint:          "https://api.openai.com/v1",
			Model:             "gpt-4o-mini",
			BatchSize:         60,
			RequestsPerSecond: 1,
			TimeoutSeconds:    60,
		},
		Mail: MailConfig{
			Host:          "smtp.gmail.com",
			Port:          465,
			SubjectPrefix: "Reporte de Noticias",
		},
	}
}
