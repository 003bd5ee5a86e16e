package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metropower/dashboard/internal/api/http/handlers"
	"github.com/metropower/dashboard/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Employees   *handlers.EmployeesHandler
	Projects    *handlers.ProjectsHandler
	Assignments *handlers.AssignmentsHandler
	Export      *handlers.ExportHandler
	Import      *handlers.ImportHandler
	Activity    *handlers.ActivityHandler
	BasicAuth   *auth.BasicAuth
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	protected := app.Group("", cfg.BasicAuth.Handle)
	writer := auth.RequireWriter()

	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Get("/activity", cfg.Activity.Recent)

	employees := protected.Group("/employees")
	employees.Get("/", cfg.Employees.List)
	employees.Post("/", writer, cfg.Employees.Create)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", writer, cfg.Employees.Update)

	projects := protected.Group("/projects")
	projects.Get("/", cfg.Projects.List)
	projects.Post("/", writer, cfg.Projects.Create)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Put("/:id", writer, cfg.Projects.Update)

	assignments := protected.Group("/assignments")
	assignments.Get("/", cfg.Assignments.List)
	assignments.Post("/", writer, cfg.Assignments.Create)
	assignments.Get("/:id", cfg.Assignments.Get)
	assignments.Delete("/:id", writer, cfg.Assignments.Delete)

	protected.Get("/export-:type", cfg.Export.Export)
	protected.Post("/import", writer, cfg.Import.Import)
}
