package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload. All fields are free-form; absent fields are
// stored as empty strings.
type CreateTicketRequest struct {
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
	IssueType    string `json:"issueType"`
	Description  string `json:"description"`
}

// CreateTicketResponse payload.
type CreateTicketResponse struct {
	Message  string `json:"message"`
	TicketID string `json:"ticketId"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status        string `json:"status"`
	AdminPassword string `json:"adminPassword"`
}

// ResendNotificationsRequest payload.
type ResendNotificationsRequest struct {
	AdminPassword string `json:"adminPassword"`
	Limit         int    `json:"limit"`
}

// ResendNotificationsResponse payload.
type ResendNotificationsResponse struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}

// TicketResponse is the wire shape of a ticket record.
type TicketResponse struct {
	ID           string     `json:"id"`
	TicketID     string     `json:"ticketId"`
	EmployeeName string     `json:"employeeName"`
	Department   string     `json:"department"`
	IssueType    string     `json:"issueType"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	NotifiedAt   *time.Time `json:"notifiedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// NewTicketResponse maps a domain ticket to its wire shape.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID,
		TicketID:     ticket.TicketID,
		EmployeeName: ticket.EmployeeName,
		Department:   ticket.Department,
		IssueType:    ticket.IssueType,
		Description:  ticket.Description,
		Status:       ticket.Status,
		NotifiedAt:   ticket.NotifiedAt,
		CreatedAt:    ticket.CreatedAt,
	}
}

// NewTicketResponses maps a slice of domain tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}
