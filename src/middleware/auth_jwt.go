package middleware

import (
	"strings"

	"Backend-FormDesk/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthJWT guards admin routes with a bearer token check.
func AuthJWT(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("adminId", claims.AdminID)
		c.Locals("email", claims.Email)

		return c.Next()
	}
}
