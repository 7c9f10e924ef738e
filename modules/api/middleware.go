package api

import (
	"strings"
	"time"

	"github.com/example/task-manager-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the key used to store verified claims in the Fiber context.
const UserContextKey = "user"

// AuthMiddleware creates a middleware that extracts and verifies the Bearer
// credential. leeway is the clock-skew tolerance forwarded to the verifier;
// the create route passes two minutes, all other routes pass zero.
func AuthMiddleware(authAdapter auth.AuthPort, leeway time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		claims, err := authAdapter.VerifyToken(c.UserContext(), token, leeway)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, claims)

		return c.Next()
	}
}
