package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront-admin/internal/service/auth"
)

const (
	UserIDContextKey    = "user_id"
	UserEmailContextKey = "user_email"
	APIKeyHeader        = "X-API-Key"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid authorization header format",
			})
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserIDContextKey, claims.UserID)
		c.Locals(UserEmailContextKey, claims.Email)

		return c.Next()
	}
}

func RequireAPIKey(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(APIKeyHeader)
		if key == "" {
			return Unauthorized("Missing API key")
		}
		if err := authService.VerifyAPIKey(key); err != nil {
			return Unauthorized("Invalid API key")
		}
		return c.Next()
	}
}

func GetCurrentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDContextKey).(string)
	return userID
}
