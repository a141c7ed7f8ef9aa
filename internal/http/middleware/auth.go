package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"galleryapi/internal/auth"
)

const (
	// UserIDLocalKey holds the authenticated user's id in Fiber locals.
	UserIDLocalKey = "user_id"
	// UserEmailLocalKey holds the authenticated user's email in Fiber locals.
	UserEmailLocalKey = "user_email"
	// UserNameLocalKey holds the authenticated user's display name in Fiber locals.
	UserNameLocalKey = "user_name"
)

// Auth guards routes behind a Bearer JWT. On success the user's identity is
// stored in context locals; on failure the request stops with 401 and the
// standard error envelope is produced by the global error handler.
func Auth(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(UserIDLocalKey, claims.UserID)
		c.Locals(UserEmailLocalKey, claims.Email)
		c.Locals(UserNameLocalKey, claims.DisplayName)

		return c.Next()
	}
}
