package middleware

import (
	"context"

	common_models "go-hiring/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// HoldingMiddleware extracts the X-Holding-Id header and adds it to the
// request context so repositories can scope reads to one holding.
func HoldingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		holdingID := c.Get("X-Holding-Id")
		if holdingID != "" {
			ctx := context.WithValue(c.UserContext(), common_models.HoldingIDKey, holdingID)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}
