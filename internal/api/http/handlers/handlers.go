package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/metropower/dashboard/internal/auth"
	"github.com/metropower/dashboard/internal/service"
	apperrors "github.com/metropower/dashboard/pkg/util/errorutil"
)

// requestContext carries the request deadline and the authenticated operator's name.
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if user, ok := auth.PrincipalFromContext(c); ok {
		ctx = service.WithActor(ctx, user.Username)
	}
	return ctx
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	return nil
}

func parseAssignmentID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("assignment id must be a positive integer", map[string]any{"field": "assignment_id"})
	}
	return id, nil
}
