// Package email sends transactional mail over SMTP. A nil *Sender is
// valid and drops messages, so callers never branch on whether SMTP is
// configured.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"modtok/platform/config"
	"modtok/platform/logger"
)

// Sender delivers mail through a configured SMTP relay.
type Sender struct {
	client   *mail.Client
	fromName string
	fromAddr string
	log      *logger.Logger
}

// New creates a sender from the email configuration. Returns nil when
// SMTP is not configured.
func New(cfg config.EmailConfig, log *logger.Logger) (*Sender, error) {
	if !cfg.IsEmailEnabled() {
		return nil, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.GetSMTPPort()),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.GetSMTPUsername() != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.GetSMTPUsername()),
			mail.WithPassword(cfg.GetSMTPPassword()),
		)
	}

	client, err := mail.NewClient(cfg.GetSMTPHost(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Sender{
		client:   client,
		fromName: cfg.GetEmailFromName(),
		fromAddr: cfg.GetEmailFromAddress(),
		log:      log,
	}, nil
}

// Send delivers a plain text message to one recipient.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if s == nil {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromAddr); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.log.Info("email_sent", "to", to, "subject", subject)
	return nil
}
