package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/metropower/dashboard/internal/api/dto"
	"github.com/metropower/dashboard/internal/repository"
	"github.com/metropower/dashboard/internal/service"
)

// AssignmentsHandler exposes daily work assignments.
type AssignmentsHandler struct {
	service *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(svc *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{service: svc}
}

// List handles GET /assignments. The from/to window feeds the calendar view.
func (h *AssignmentsHandler) List(c *fiber.Ctx) error {
	filter := repository.AssignmentFilter{
		From:       c.Query("from"),
		To:         c.Query("to"),
		EmployeeID: c.Query("employee_id"),
		ProjectID:  c.Query("project_id"),
	}
	assignments, err := h.service.List(requestContext(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssignmentList(assignments)})
}

// Create handles POST /assignments.
func (h *AssignmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.AssignmentCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	assignment, err := h.service.Create(requestContext(c), req.Request())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssignmentResponse(assignment)})
}

// Get handles GET /assignments/:id.
func (h *AssignmentsHandler) Get(c *fiber.Ctx) error {
	id, err := parseAssignmentID(c)
	if err != nil {
		return err
	}
	assignment, err := h.service.Get(requestContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssignmentResponse(assignment)})
}

// Delete handles DELETE /assignments/:id.
func (h *AssignmentsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseAssignmentID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(requestContext(c), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
