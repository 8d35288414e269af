package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages the public ticket endpoints and the admin-gated
// status update.
type TicketsHandler struct {
	service    *service.TicketService
	authorizer auth.Authorizer
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, authorizer auth.Authorizer) *TicketsHandler {
	return &TicketsHandler{service: ticketService, authorizer: authorizer}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload")
	}

	ticket, notified, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		EmployeeName: req.EmployeeName,
		Department:   req.Department,
		IssueType:    req.IssueType,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}

	message := "Ticket Created & Email Sent"
	if !notified {
		message = "Ticket Created, Email Notification Pending"
	}
	return c.JSON(dto.CreateTicketResponse{Message: message, TicketID: ticket.TicketID})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponses(tickets))
}

// TrackTicket GET /api/track/:ticketId.
func (h *TicketsHandler) TrackTicket(c *fiber.Ctx) error {
	ticket, err := h.service.TrackTicket(c.UserContext(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// UpdateStatus PUT /api/tickets/:id. The admin gate runs before any store
// access.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload")
	}
	if err := h.authorizer.AuthorizeAdmin(req.AdminPassword); err != nil {
		return err
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}
