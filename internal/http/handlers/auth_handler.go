package handlers

import (
	"errors"
	"time"

	"shopadmin/internal/api"
	"shopadmin/internal/log"
	"shopadmin/internal/services"
	"shopadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sidCookie = "sid"

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func clearSID(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if adminOf(c) != nil {
		return c.Redirect("/admin")
	}
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, email string) error {
	return renderStatus(c, fiber.StatusUnauthorized, "login", fiber.Map{"Err": "Invalid email or password", "Email": email})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return h.loginFailed(c, "")
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return h.loginFailed(c, email)
	}

	sid := ensureSID(c)
	_, err := h.Auth.Login(c.UserContext(), sid, email, pass)
	switch {
	case errors.Is(err, services.ErrBadCreds), errors.Is(err, services.ErrNotAdmin):
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": err.Error()})
		return h.loginFailed(c, email)
	case api.IsServerError(err):
		log.Error(c, "auth.login.fail", err, map[string]any{"email": email})
		return unavailable(c)
	case err != nil:
		log.Error(c, "auth.login.fail", err, map[string]any{"email": email})
		return h.loginFailed(c, email)
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(sidCookie)
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	clearSID(c)
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}
