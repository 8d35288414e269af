package mailer

import (
	"context"

	mail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// SMTPMailer sends mail through a single configured SMTP account. The client
// is built once at startup and shared; go-mail dials per send.
type SMTPMailer struct {
	client *mail.Client
	from   string
	logger *zap.Logger
}

// NewSMTPMailer builds the mailer from SMTP config.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client, from: cfg.From, logger: logger}, nil
}

// Send delivers the message synchronously.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return err
	}
	if err := out.To(msg.To...); err != nil {
		return err
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		m.logger.Warn("smtp send failed", zap.Strings("to", msg.To), zap.Error(err))
		return err
	}
	m.logger.Debug("smtp send succeeded", zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
