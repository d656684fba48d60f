package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// RequireStaff rejects callers whose role is not ADMIN or PARTNER.
// Must run after SessionMiddleware.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		if !sess.Role.IsStaff() {
			log.Printf("🚫 [STAFF] user %s (%s) denied on %s", sess.UserID, sess.Role, c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "staff access required",
			})
		}
		return c.Next()
	}
}
