package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Absent rows surface as
// pgx.ErrNoRows; callers decide how to present that.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	GetByTicketID(ctx context.Context, ticketID string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Ticket, error)
	ListUnnotified(ctx context.Context, limit int) ([]domain.Ticket, error)
	MarkNotified(ctx context.Context, id string, at time.Time) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_id, employee_name, department, issue_type, description, status, notified_at, created_at`

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_id, employee_name, department, issue_type, description, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketID,
		ticket.EmployeeName,
		ticket.Department,
		ticket.IssueType,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_id=$1`
	return r.fetchSingle(ctx, query, ticketID)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Ticket, error) {
	const query = `UPDATE tickets SET status=$1 WHERE id=$2 RETURNING ` + ticketColumns
	return r.fetchSingle(ctx, query, status, id)
}

func (r *ticketRepository) ListUnnotified(ctx context.Context, limit int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE notified_at IS NULL ORDER BY created_at ASC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) MarkNotified(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE tickets SET notified_at=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.EmployeeName,
		&ticket.Department,
		&ticket.IssueType,
		&ticket.Description,
		&ticket.Status,
		&ticket.NotifiedAt,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketID,
			&ticket.EmployeeName,
			&ticket.Department,
			&ticket.IssueType,
			&ticket.Description,
			&ticket.Status,
			&ticket.NotifiedAt,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
