package middleware

import (
	"huddle-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth answers 401 unless the session holds a user.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// CurrentUser returns the session user, or nil when nobody is signed in.
func CurrentUser(c *fiber.Ctx) *SessionUser {
	data, _ := c.Locals(sessionDataLocal).(*sessionData)
	if data == nil || data.User == nil || data.User.UserID == "" {
		return nil
	}
	return data.User
}
