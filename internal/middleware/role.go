package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edithub/edithub-api/internal/models"
)

func RequireRoles(allowed ...models.Role) fiber.Handler {
	allowedSet := map[models.Role]bool{}
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *fiber.Ctx) error {
		p, ok := Principal(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if !allowedSet[p.Role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}

		return c.Next()
	}
}
