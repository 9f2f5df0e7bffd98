package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-storefront-admin/internal/session"
)

// RequireSession admits requests only while the console holds a live backend session, and only
// from clients presenting that session's token as "Bearer <token>".
func RequireSession(sess *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		if !sess.IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Session expired, please sign in again"})
		}
		if parts[1] != sess.Token() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		if user, ok := sess.User(); ok {
			c.Locals("user_id", user.ID)
			c.Locals("user_email", user.Email)
			c.Locals("user_name", user.Name)
		}
		return c.Next()
	}
}

// RequireSocketSession guards the websocket upgrade. Browsers cannot set headers on the upgrade
// request, so the token comes in the "token" query parameter.
func RequireSocketSession(sess *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" || !sess.IsAuthenticated() || token != sess.Token() {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Next()
	}
}
