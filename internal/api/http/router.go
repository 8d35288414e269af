package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Tickets       *handlers.TicketsHandler
	Notifications *handlers.NotificationsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/track/:ticketId", cfg.Tickets.TrackTicket)
	api.Put("/tickets/:id", cfg.Tickets.UpdateStatus)

	admin := api.Group("/admin")
	admin.Get("/notifications/pending", cfg.Notifications.ListPending)
	admin.Post("/notifications/resend", cfg.Notifications.Resend)
}
