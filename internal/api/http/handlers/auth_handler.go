package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metropower/dashboard/internal/api/dto"
	"github.com/metropower/dashboard/internal/auth"
	apperrors "github.com/metropower/dashboard/pkg/util/errorutil"
)

// AuthHandler reports on the authenticated operator.
type AuthHandler struct{}

// NewAuthHandler constructs handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
