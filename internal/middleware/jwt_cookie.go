package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edithub/edithub-api/internal/utils"
)

// SessionCookie is the HTTP-only cookie carrying the signed session token.
const SessionCookie = "eh_token"

func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(SessionCookie)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
