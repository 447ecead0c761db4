// This file provides the session authentication gate for the dashboard.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthRequired is a middleware that ensures the user is authenticated.
// It checks for a valid session and user_id, redirecting to login if not found.
//
// Context Locals Set:
//   - user_id: The authenticated user's ID (int)
//   - user_email: The user's email address (string)
//   - org_id: The user's organization UUID (string)
//
// Example:
//
//	dashboard := app.Group("/dashboard", middleware.AuthRequired(store))
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login")
		}

		userID := sess.Get("user_id")
		if userID == nil {
			return c.Redirect("/login")
		}

		// Pass user information to context for handlers to use
		c.Locals("user_id", userID)
		c.Locals("user_email", sess.Get("user_email"))
		c.Locals("org_id", sess.Get("org_id"))

		return c.Next()
	}
}
