package handlers

import (
	"errors"

	applog "shopadmin/internal/log"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if a := adminOf(c); a != nil {
		data["Admin"] = a
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// the GET that set the cookie may not have populated Locals
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func renderStatus(c *fiber.Ctx, status int, tmpl string, data fiber.Map) error {
	c.Status(status)
	return render(c, tmpl, data)
}

// unavailable is the full-page answer to a backend that failed or could not be reached.
func unavailable(c *fiber.Ctx) error {
	return renderStatus(c, fiber.StatusServiceUnavailable, "server_error", fiber.Map{
		"Message": "The shop service is unavailable right now. Please try again in a moment.",
	})
}

// ErrorHandler renders fiber errors on the friendly error page. Errors that
// carry no HTTP status are logged and shown as a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe) && fe.Code == fiber.StatusNotFound:
		code, msg = fe.Code, "Page not found"
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	default:
		applog.Error(c, "server.error", err, nil)
	}
	data := fiber.Map{"Message": msg}
	if code != fiber.StatusNotFound {
		data["Title"] = "Request failed"
	}
	if rerr := renderStatus(c, code, "notfound", data); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
