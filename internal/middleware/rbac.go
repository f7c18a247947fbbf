package middleware

import (
	"slices"

	"go-hiring/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireRole checks that the authenticated user carries one of the given roles.
// Workflow template administration is gated this way.
func RequireRole(skipAuth bool, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			return c.Next()
		}

		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		for _, role := range roles {
			if slices.Contains(claims.Roles, role) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: Insufficient permissions",
		})
	}
}
