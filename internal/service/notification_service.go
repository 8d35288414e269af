package service

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/mailer"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const ticketCreatedSubject = "New IT Ticket Created"

var errNoRecipient = errors.New("admin notification recipient not configured")

// Ticket fields are free-form user input; html/template escapes them.
var ticketCreatedBody = template.Must(template.New("ticket_created").Parse(`
<h2>New Ticket Created</h2>
<p><strong>Ticket ID:</strong> {{.TicketID}}</p>
<p><strong>Name:</strong> {{.EmployeeName}}</p>
<p><strong>Department:</strong> {{.Department}}</p>
<p><strong>Issue:</strong> {{.IssueType}}</p>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Status:</strong> {{.Status}}</p>
`))

// NotificationService delivers admin notifications for created tickets and
// exposes the pending/resend operations ops tooling uses to recover tickets
// whose delivery was never confirmed.
type NotificationService struct {
	mailer     mailer.Mailer
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(m mailer.Mailer, tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		mailer:     m,
		tickets:    tickets,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// NotifyTicketCreated builds and sends the admin email for a created ticket.
// The returned error is a notification error, never a storage one.
func (n *NotificationService) NotifyTicketCreated(ctx context.Context, ticket *domain.Ticket) error {
	if strings.TrimSpace(n.cfg.AdminEmail) == "" {
		n.logger.Warn("ADMIN_EMAIL not configured; ticket notification left pending",
			zap.String("ticket_id", ticket.TicketID))
		return errorutil.NewNotificationError(errNoRecipient)
	}

	var body strings.Builder
	if err := ticketCreatedBody.Execute(&body, ticket); err != nil {
		return errorutil.NewNotificationError(err)
	}

	msg := mailer.Message{
		To:       []string{n.cfg.AdminEmail},
		Subject:  ticketCreatedSubject,
		HTMLBody: body.String(),
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return errorutil.NewNotificationError(err)
	}
	return nil
}

// PendingTickets lists tickets without a confirmed notification, oldest first.
func (n *NotificationService) PendingTickets(ctx context.Context, limit int) ([]domain.Ticket, error) {
	tickets, err := n.tickets.ListUnnotified(ctx, limit)
	if err != nil {
		return nil, errorutil.NewStorageError("Error Fetching Pending Notifications", err)
	}
	return tickets, nil
}

// ResendPending re-sends notifications for tickets lacking confirmed delivery
// and marks each success. Individual failures are counted, not fatal.
func (n *NotificationService) ResendPending(ctx context.Context, limit int) (sent, failed int, err error) {
	tickets, err := n.PendingTickets(ctx, limit)
	if err != nil {
		return 0, 0, err
	}

	for i := range tickets {
		ticket := &tickets[i]
		if sendErr := n.NotifyTicketCreated(ctx, ticket); sendErr != nil {
			failed++
			n.logger.Warn("resend failed", zap.String("ticket_id", ticket.TicketID), zap.Error(sendErr))
			continue
		}
		now := time.Now()
		if markErr := n.tickets.MarkNotified(ctx, ticket.ID, now); markErr != nil {
			n.logger.Error("notification sent but not recorded",
				zap.String("ticket_id", ticket.TicketID), zap.Error(markErr))
		}
		sent++
	}
	return sent, failed, nil
}

// RegisterHandlers subscribes to ticket lifecycle events for audit logging and
// the webhook stub. The admin email itself is sent on the create path, not here.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
