package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/metropower/dashboard/internal/api/dto"
	"github.com/metropower/dashboard/internal/service"
)

// ProjectsHandler exposes the project list.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(svc *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: svc}
}

// List handles GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.service.List(requestContext(c), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectList(projects)})
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	project, err := h.service.Create(requestContext(c), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Get handles GET /projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.service.Get(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Update handles PUT /projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProjectUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	project, err := h.service.Update(requestContext(c), c.Params("id"), req.Update())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}
