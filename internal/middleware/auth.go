package middleware

import (
	"strings"

	"github.com/clothcycle/clothcycle-api/internal/security"
	"github.com/clothcycle/clothcycle-api/internal/types"
	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the context local under which Auth stores the caller's id.
const UserIDKey = "userID"

// Auth validates the bearer token and stores the authenticated user id in
// the request context. Handlers still compare that id against the resource
// being acted on; the middleware only establishes who is calling.
func Auth(tokens *security.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return types.NewCustomError(fiber.StatusUnauthorized, "Missing Authorization header", "auth.token")
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return types.NewCustomError(fiber.StatusUnauthorized, "Authorization header is not a bearer token", "auth.token")
		}

		userID, err := tokens.Validate(tokenStr)
		if err != nil {
			return types.NewCustomError(fiber.StatusUnauthorized, "Invalid or expired token", "auth.token")
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// AuthenticatedUserID returns the id Auth stored, or 0 when absent.
func AuthenticatedUserID(c *fiber.Ctx) uint64 {
	if id, ok := c.Locals(UserIDKey).(uint64); ok {
		return id
	}
	return 0
}
