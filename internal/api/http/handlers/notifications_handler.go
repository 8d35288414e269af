package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const defaultResendLimit = 50

// NotificationsHandler exposes the admin-gated delivery recovery endpoints:
// listing tickets without a confirmed notification and re-sending them.
type NotificationsHandler struct {
	service    *service.NotificationService
	authorizer auth.Authorizer
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService, authorizer auth.Authorizer) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService, authorizer: authorizer}
}

// ListPending GET /api/admin/notifications/pending.
func (h *NotificationsHandler) ListPending(c *fiber.Ctx) error {
	if err := h.authorizer.AuthorizeAdmin(c.Get("X-Admin-Password")); err != nil {
		return err
	}

	tickets, err := h.service.PendingTickets(c.UserContext(), defaultResendLimit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tickets": dto.NewTicketResponses(tickets)})
}

// Resend POST /api/admin/notifications/resend.
func (h *NotificationsHandler) Resend(c *fiber.Ctx) error {
	var req dto.ResendNotificationsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload")
	}
	if err := h.authorizer.AuthorizeAdmin(req.AdminPassword); err != nil {
		return err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultResendLimit
	}
	sent, failed, err := h.service.ResendPending(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.ResendNotificationsResponse{
		Message: "Notification Resend Complete",
		Sent:    sent,
		Failed:  failed,
	})
}
