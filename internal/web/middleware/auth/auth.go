package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CashGlitch/CashGlitch/internal/web/session"
)

const (
	// LoginPath is where the admin guard sends visitors without an admin session.
	LoginPath = "/login"

	// LocalsSession is the fiber.Locals key holding the *session.Data of a guarded request.
	LocalsSession = "session"
)

// AdminGuard protects server rendered admin pages.
// Visitors without a session, or with a non-admin session, are redirected to the login page.
func AdminGuard(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, ok := store.Get(c)
		if !ok {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		if !data.IsAdmin {
			log.Warn().Str("email", data.Email).Str("path", c.Path()).Msg("non-admin visitor redirected from admin area")
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		c.Locals(LocalsSession, data)

		return c.Next()
	}
}

// AdminAPIGuard protects the admin JSON API.
// A missing session answers 401, a non-admin session 403.
func AdminAPIGuard(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, ok := store.Get(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		if !data.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}

		c.Locals(LocalsSession, data)

		return c.Next()
	}
}

// CurrentSession returns the session stored by one of the guards.
func CurrentSession(c *fiber.Ctx) (*session.Data, bool) {
	data, ok := c.Locals(LocalsSession).(*session.Data)
	return data, ok && data != nil
}
