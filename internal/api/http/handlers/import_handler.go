package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metropower/dashboard/internal/service"
	apperrors "github.com/metropower/dashboard/pkg/util/errorutil"
)

// ImportHandler accepts legacy roster spreadsheets.
type ImportHandler struct {
	service *service.ImportService
}

// NewImportHandler constructs handler.
func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{service: svc}
}

// Import handles POST /import with a multipart "file" field.
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field \"file\" is required", map[string]any{"field": "file"})
	}
	file, err := header.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	summary, err := h.service.Import(requestContext(c), header.Filename, file)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
