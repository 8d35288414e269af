package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/ticketid"
	"github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const trackCacheKeyPrefix = "helpdesk:ticket:"

// Notifier delivers the admin notification for a created ticket.
type Notifier interface {
	NotifyTicketCreated(ctx context.Context, ticket *domain.Ticket) error
}

// TrackCache caches serialized tickets for the track path. persistence.Redis
// implements it; a miss or backend failure is any non-nil error.
type TrackCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	generator  *ticketid.Generator
	notifier   Notifier
	dispatcher events.Dispatcher
	cache      TrackCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Generator  *ticketid.Generator
	Notifier   Notifier
	Dispatcher events.Dispatcher
	Cache      TrackCache
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload. Fields are free-form
// and stored as submitted; no presence or format validation is applied.
type TicketCreateInput struct {
	EmployeeName string
	Department   string
	IssueType    string
	Description  string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		generator:  deps.Generator,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		logger:     deps.Logger,
	}
}

// CreateTicket persists a new ticket and then sends the admin notification.
// The two phases are independent: once the insert commits the ticket exists,
// and a notification failure leaves it created with delivery unconfirmed.
// notified reports whether delivery was confirmed on this call.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (ticket *domain.Ticket, notified bool, err error) {
	ticket = &domain.Ticket{
		TicketID:     s.generator.Next(),
		EmployeeName: input.EmployeeName,
		Department:   input.Department,
		IssueType:    input.IssueType,
		Description:  input.Description,
		Status:       domain.StatusOpen,
	}

	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, false, errorutil.NewStorageError("Error Creating Ticket", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.TicketID,
		Payload: events.TicketCreatedPayload{
			EmployeeName: ticket.EmployeeName,
			Department:   ticket.Department,
			IssueType:    ticket.IssueType,
		},
	})

	if sendErr := s.notifier.NotifyTicketCreated(ctx, ticket); sendErr != nil {
		s.logger.Warn("ticket created but notification failed",
			zap.String("ticket_id", ticket.TicketID), zap.Error(sendErr))
		return ticket, false, nil
	}

	now := time.Now()
	if markErr := s.tickets.MarkNotified(ctx, ticket.ID, now); markErr != nil {
		s.logger.Error("notification sent but not recorded",
			zap.String("ticket_id", ticket.TicketID), zap.Error(markErr))
	} else {
		ticket.NotifiedAt = &now
	}
	return ticket, true, nil
}

// ListTickets returns all tickets, newest first.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListAll(ctx)
}

// TrackTicket looks up a ticket by its public identifier, serving repeated
// lookups from the cache when one is available.
func (s *TicketService) TrackTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if cached := s.cacheGet(ctx, ticketID); cached != nil {
		return cached, nil
	}

	ticket, err := s.tickets.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewTicketNotFound()
		}
		return nil, errorutil.NewStorageError("Error Fetching Ticket", err)
	}

	s.cacheSet(ctx, ticket)
	return ticket, nil
}

// UpdateStatus overwrites the status of the ticket with the given internal id
// and returns the updated record. Status is free text; any string is accepted.
func (s *TicketService) UpdateStatus(ctx context.Context, id, status string) (*domain.Ticket, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errorutil.NewTicketNotFound()
	}

	ticket, err := s.tickets.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewTicketNotFound()
		}
		return nil, errorutil.NewStorageError("Error Updating Ticket", err)
	}

	s.cacheInvalidate(ctx, ticket.TicketID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.TicketID,
		Payload:  events.TicketStatusChangedPayload{NewStatus: ticket.Status},
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// Cache failures degrade to direct reads; they are never surfaced to callers.

func (s *TicketService) cacheGet(ctx context.Context, ticketID string) *domain.Ticket {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, trackCacheKeyPrefix+ticketID)
	if err != nil {
		return nil
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return nil
	}
	return &ticket
}

func (s *TicketService) cacheSet(ctx context.Context, ticket *domain.Ticket) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(ticket)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, trackCacheKeyPrefix+ticket.TicketID, raw, s.cacheTTL); err != nil {
		s.logger.Debug("cache set failed", zap.String("ticket_id", ticket.TicketID), zap.Error(err))
	}
}

func (s *TicketService) cacheInvalidate(ctx context.Context, ticketID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, trackCacheKeyPrefix+ticketID); err != nil {
		s.logger.Debug("cache invalidate failed", zap.String("ticket_id", ticketID), zap.Error(err))
	}
}
