package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metropower/dashboard/internal/service"
)

// ActivityHandler lists recent domain events.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

// Recent handles GET /activity.
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Recent()})
}
