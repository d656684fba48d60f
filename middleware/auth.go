package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

// SessionMiddleware validates the Bearer session token and attaches the
// caller's identity to the request context. Requests without a valid
// session are rejected with 401.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization header",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			// no "Bearer " prefix — try raw value
			token = authHeader
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// Session is the authenticated caller as seen by services.
type Session struct {
	UserID string
	Role   models.UserRole
}

// SessionFromCtx reads the identity attached by SessionMiddleware.
// Returns nil when the request carries no session.
func SessionFromCtx(c *fiber.Ctx) *Session {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return nil
	}
	role, ok := c.Locals("user_role").(models.UserRole)
	if !ok {
		return nil
	}
	return &Session{UserID: userID, Role: role}
}
