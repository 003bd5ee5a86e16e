package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/metropower/dashboard/internal/service"
)

// ArchiveKeyHeader reports where the archived copy of an export was stored.
const ArchiveKeyHeader = "X-Archive-Key"

// ExportHandler serves collection downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export handles GET /export-:type.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	result, err := h.service.Export(requestContext(c), c.Params("type"), c.Query("format"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
	if result.ArchiveKey != "" {
		c.Set(ArchiveKeyHeader, result.ArchiveKey)
	}
	return c.Send(result.Body)
}
