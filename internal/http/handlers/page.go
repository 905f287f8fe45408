package handlers

import (
	"mime/multipart"

	"shopadmin/internal/api"
	applog "shopadmin/internal/log"
	"shopadmin/internal/services"
	"shopadmin/internal/upload"
	"shopadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// Limits bounds what a single form post may upload.
type Limits struct {
	MaxFiles    int
	MaxFileSize int64
}

// modal is the request-local "which dialog is open, for which row" state.
type modal struct {
	Kind string
	ID   int64
}

func (m modal) Open() bool          { return m.Kind != "" }
func (m modal) Is(kind string) bool { return m.Kind == kind }

var modalKinds = map[string]bool{"create": true, "edit": true, "view": true, "delete": true, "products": true, "status": true}

func modalOf(c *fiber.Ctx) modal {
	kind := c.Query("modal")
	if !modalKinds[kind] {
		return modal{}
	}
	if kind == "create" {
		return modal{Kind: kind}
	}
	id, ok := validate.ID(c.Query("id"))
	if !ok {
		return modal{}
	}
	return modal{Kind: kind, ID: id}
}

// retry re-renders a page with an inline alert at the given status.
type retry func(status int, alert string) error

// base holds what every family handler shares.
type base struct {
	auth   *services.AuthService
	limits Limits
}

// done audits a successful post and redirects back (post/redirect/get).
func (b base) done(c *fiber.Ctx, action string, fields map[string]any, back string) error {
	applog.Audit(c, action, fields)
	return c.Redirect(back, fiber.StatusSeeOther)
}

// failed presents a failed backend call: a rejected session ends it, a
// 4xx goes back inline through again, anything else is a full-page 503.
func (b base) failed(c *fiber.Ctx, action string, err error, fields map[string]any, again retry) error {
	switch {
	case api.IsUnauthorized(err):
		applog.Security(c, "session.rejected", fields)
		if a := adminOf(c); a != nil {
			_ = b.auth.Logout(a.SID)
		}
		clearSID(c)
		return c.Redirect("/login", fiber.StatusSeeOther)
	case api.IsValidation(err):
		applog.Error(c, action+".fail", err, fields)
		return again(api.StatusOf(err), err.Error())
	default:
		applog.Error(c, action+".fail", err, fields)
		return unavailable(c)
	}
}

// invalid answers a form that never reached the backend.
func (b base) invalid(c *fiber.Ctx, action, msg string, again retry) error {
	applog.Security(c, action+".invalid", map[string]any{"reason": msg})
	return again(fiber.StatusBadRequest, msg)
}

// media reads the uploaded "media" parts, capped at the configured count.
func (b base) media(c *fiber.Ctx) ([]api.File, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	sel, err := upload.Collect(mf.File[api.MediaField], b.limits.MaxFiles, b.limits.MaxFileSize)
	if err != nil {
		return nil, err
	}
	return sel.Files(), nil
}

func multipartOf(c *fiber.Ctx) *multipart.Form {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	return mf
}

// formValues snapshots the submitted fields so a rejected form reopens filled in.
func formValues(c *fiber.Ctx) map[string]string {
	out := map[string]string{}
	if mf := multipartOf(c); mf != nil {
		for k, v := range mf.Value {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
		return out
	}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		out[string(k)] = string(v)
	})
	return out
}

// formList returns every value posted under key.
func formList(c *fiber.Ctx, key string) []string {
	if mf := multipartOf(c); mf != nil {
		return mf.Value[key]
	}
	var out []string
	for _, v := range c.Request().PostArgs().PeekMulti(key) {
		out = append(out, string(v))
	}
	return out
}

func paramID(c *fiber.Ctx, key string) (int64, bool) {
	return validate.ID(c.Params(key))
}
