package handlers

import (
	"errors"

	"shopadmin/internal/api"
	applog "shopadmin/internal/log"
	"shopadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

const localsAdmin = "session"

// RequireAuth lets the request through only with a live admin session;
// otherwise it answers with the static sign-in-required page.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		a, err := auth.Current(sid)
		if err != nil {
			if !errors.Is(err, services.ErrNoSession) {
				applog.Error(c, "session.lookup.fail", err, nil)
			}
			applog.Security(c, "access.denied", map[string]any{"has_sid": sid != ""})
			return renderStatus(c, fiber.StatusUnauthorized, "auth_required", nil)
		}
		c.Locals(applog.LocalsUser, a.Email)
		if auth.NeedsRefresh(a) {
			fresh, err := auth.Refresh(c.UserContext(), a)
			switch {
			case err == nil:
				applog.Audit(c, "auth.refresh", map[string]any{"expires_at": fresh.ExpiresAt})
				a = fresh
			case api.IsUnauthorized(err):
				applog.Security(c, "session.rejected", map[string]any{"during": "refresh"})
				_ = auth.Logout(sid)
				clearSID(c)
				return c.Redirect("/login", fiber.StatusSeeOther)
			default:
				// the current token is still valid; try again on the next request
				applog.Error(c, "auth.refresh.fail", err, nil)
			}
		}
		c.Locals(localsAdmin, a)
		return c.Next()
	}
}

// AttachAdmin exposes the admin to templates on public pages without enforcing it.
func AttachAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sidCookie); sid != "" {
			if a, err := auth.Current(sid); err == nil {
				c.Locals(localsAdmin, a)
				c.Locals(applog.LocalsUser, a.Email)
			}
		}
		return c.Next()
	}
}

func adminOf(c *fiber.Ctx) *services.Admin {
	a, _ := c.Locals(localsAdmin).(*services.Admin)
	return a
}
