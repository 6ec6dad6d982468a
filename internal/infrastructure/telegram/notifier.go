package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsAlerts/internal/config"
	"NewsAlerts/internal/ports"
)

const (
	defaultAPIBase = "https://api.telegram.org"
	// maxMessageRunes is the Bot API limit for one sendMessage text.
	maxMessageRunes = 4096
)

// Notifier sends digests to a Telegram chat via bot API.
type Notifier struct {
	apiBase  string
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(cfg config.TelegramConfig) *Notifier {
	return &Notifier{
		apiBase:  defaultAPIBase,
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the channel in logs and warnings.
func (n *Notifier) Name() string {
	return "telegram"
}

// Deliver posts the plain-text digest, split into as many messages as the
// Bot API size limit requires.
func (n *Notifier) Deliver(ctx context.Context, msg ports.Message) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	text := strings.TrimSpace(msg.Subject + "\n\n" + msg.Text)
	for i, part := range splitMessage(text, maxMessageRunes) {
		if err := n.send(ctx, part); err != nil {
			return fmt.Errorf("part %d: %w", i+1, err)
		}
	}
	return nil
}

func (n *Notifier) send(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// splitMessage cuts text into chunks of at most limit runes, preferring
// line boundaries.
func splitMessage(text string, limit int) []string {
	var (
		parts   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			parts = append(parts, string(current))
			current = current[:0]
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)
		if len(current)+len(runes) > limit {
			flush()
		}
		for len(runes) > limit {
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}
		current = append(current, runes...)
	}
	flush()
	return parts
}
