package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/utils"
)

// AttachPrincipal turns validated claims into a models.Principal local so
// handlers never re-derive identity from ambient request state.
func AttachPrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("claims")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := raw.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		pid, err := uuid.Parse(strings.TrimSpace(claims.PrincipalID))
		if err != nil {
			return fiber.ErrUnauthorized
		}

		role := models.Role(strings.ToLower(strings.TrimSpace(claims.Role)))
		switch role {
		case models.RoleAdmin, models.RoleCustomer, models.RoleEditor:
		default:
			return fiber.ErrUnauthorized
		}

		c.Locals("principal", models.Principal{ID: pid, Role: role})
		return c.Next()
	}
}

// Principal reads the principal attached by AttachPrincipal.
func Principal(c *fiber.Ctx) (models.Principal, bool) {
	p, ok := c.Locals("principal").(models.Principal)
	return p, ok
}
