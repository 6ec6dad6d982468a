package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"NewsAlerts/internal/config"
	"NewsAlerts/internal/ports"
)

const implicitTLSPort = 465

// Notifier delivers digests as multipart (plain text + HTML) e-mail over
// authenticated SMTP.
type Notifier struct {
	cfg    config.MailConfig
	logger *slog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier keeps the SMTP settings; nothing is dialed until Deliver.
func NewNotifier(cfg config.MailConfig, logger *slog.Logger) *Notifier {
	return &Notifier{cfg: cfg, logger: logger}
}

// Name identifies the channel in logs and warnings.
func (n *Notifier) Name() string {
	return "mail"
}

// Deliver sends msg to every configured recipient.
func (n *Notifier) Deliver(ctx context.Context, msg ports.Message) error {
	if err := n.cfg.Validate(); err != nil {
		return fmt.Errorf("mail notifier misconfigured: %w", err)
	}

	m, err := n.buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(n.cfg.Host, n.clientOptions()...)
	if err != nil {
		return fmt.Errorf("new smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", n.cfg.Host, n.cfg.Port, err)
	}

	if n.logger != nil {
		n.logger.Info("mail sent", "recipients", len(n.cfg.Recipients), "subject", msg.Subject)
	}
	return nil
}

func (n *Notifier) buildMessage(msg ports.Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(n.cfg.Sender); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(n.cfg.Recipients...); err != nil {
		return nil, fmt.Errorf("set recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}

func (n *Notifier) clientOptions() []gomail.Option {
	port := n.cfg.Port
	if port <= 0 {
		port = implicitTLSPort
	}

	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.cfg.Sender),
		gomail.WithPassword(n.cfg.Password),
	}
	if port == implicitTLSPort {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}
	return opts
}
