package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/mailer"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/ticketid"
)

const testAdminPassword = "test-admin-secret"

// fakeTicketRepo is an in-memory TicketRepository matching the store contract.
// insertSawDeadline records whether the last Insert context carried a deadline.
type fakeTicketRepo struct {
	mu                sync.Mutex
	tickets           []domain.Ticket
	insertSawDeadline bool
}

func (r *fakeTicketRepo) Insert(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, r.insertSawDeadline = ctx.Deadline()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Ticket, 0, len(r.tickets))
	for i := len(r.tickets) - 1; i >= 0; i-- {
		out = append(out, r.tickets[i])
	}
	return out, nil
}

func (r *fakeTicketRepo) GetByTicketID(_ context.Context, ticketID string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].TicketID == ticketID {
			copied := r.tickets[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id, status string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets[i].Status = status
			copied := r.tickets[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListUnnotified(_ context.Context, limit int) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Ticket{}
	for i := range r.tickets {
		if r.tickets[i].NotifiedAt == nil {
			out = append(out, r.tickets[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) MarkNotified(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			notifiedAt := at
			r.tickets[i].NotifiedAt = &notifiedAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

// fakeMailer captures outbound messages; a non-nil err fails every send.
type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type testEnv struct {
	app    *fiber.App
	repo   *fakeTicketRepo
	mailer *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithTimeout(t, 0)
}

func newTestEnvWithTimeout(t *testing.T, timeout time.Duration) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	repo := &fakeTicketRepo{}
	outbox := &fakeMailer{}
	dispatcher := events.NewInMemoryDispatcher()

	notificationService := service.NewNotificationService(outbox, repo, dispatcher, logger,
		config.NotifyConfig{AdminEmail: "admin@example.com"})
	notificationService.RegisterHandlers()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repo,
		Generator:  ticketid.NewGenerator(),
		Notifier:   notificationService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	authorizer := auth.NewStaticSecretAuthorizer(config.AdminConfig{Password: testAdminPassword})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), timeout)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler("helpdesk-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Tickets:       handlers.NewTicketsHandler(ticketService, authorizer),
		Notifications: handlers.NewNotificationsHandler(notificationService, authorizer),
	})

	return &testEnv{app: app, repo: repo, mailer: outbox}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	_ = resp.Body.Close()
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response %q: %v", raw, err)
	}
	return out
}
