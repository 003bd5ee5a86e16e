package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/metropower/dashboard/pkg/util/errorutil"
)

// RequireWriter lets only active admins through.
func RequireWriter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.CanWrite() {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
