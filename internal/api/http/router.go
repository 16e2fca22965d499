package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	protected.Post("/complaints", cfg.Complaints.Create)
	protected.Get("/complaints", cfg.Complaints.List)
	protected.Get("/complaints/:id", cfg.Complaints.Get)
	protected.Put("/complaints/:id", cfg.Complaints.Update)
	protected.Get("/complaints/:id/history", cfg.Complaints.History)

	// Approval decisions are restricted to admins; which admin is "the
	// approver" is an organizational policy, not enforced here.
	approvers := protected.Group("", auth.RequireRole(domain.RoleAdmin))
	approvers.Post("/complaints/:id/actions/:index/approval", cfg.Complaints.DecideAction)
	approvers.Post("/complaints/:id/conclusion/approval", cfg.Complaints.DecideConclusion)

	protected.Get("/reports/summary", cfg.Reports.Summary)
}
