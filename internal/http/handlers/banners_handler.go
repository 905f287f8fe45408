package handlers

import (
	"fmt"

	"shopadmin/internal/api"
	"shopadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const bannersPath = "/admin/banners"

type BannersHandler struct{ base }

func (h *BannersHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	s := adminOf(c).Stores.MainBanners
	data := fiber.Map{
		"Title": "Main banners", "Nav": "banners",
		"State": s.Snapshot(), "Modal": m, "Form": form, "Alert": alert,
	}
	if v, ok := s.Active(); ok {
		data["Active"] = v
	}
	if m.ID != 0 {
		if v, ok := s.Find(m.ID); ok {
			data["Target"] = v
			if form == nil {
				active := ""
				if v.IsActive {
					active = "on"
				}
				data["Form"] = map[string]string{"title": v.Title, "isActive": active}
			}
		}
	}
	return renderStatus(c, status, "banners", data)
}

// GET /admin/banners
func (h *BannersHandler) List(c *fiber.Ctx) error {
	s := adminOf(c).Stores.MainBanners
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error { return s.Fetch(ctx, validate.Page(c.Query("page")), 10) })
	g.Go(func() error { return s.FetchActive(ctx) })
	if err := g.Wait(); err != nil {
		return h.failed(c, "admin.banners.list", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.page(c, fiber.StatusOK, modalOf(c), nil, "")
}

func bannerInput(c *fiber.Ctx) (api.MainBannerInput, string) {
	var in api.MainBannerInput
	var ok bool
	if in.Title, ok = validate.Text(c.FormValue("title"), 200); !ok {
		return in, "Title is too long."
	}
	if in.DeletedMediaIDs, ok = validate.IDs(formList(c, "deletedMediaIds")); !ok {
		return in, "Unknown media file."
	}
	in.IsActive = c.FormValue("isActive") == "on" || c.FormValue("isActive") == "true"
	return in, ""
}

// POST /admin/banners
//
// A banner without media is rejected before it reaches the backend.
func (h *BannersHandler) Create(c *fiber.Ctx) error {
	form := formValues(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{Kind: "create"}, form, alert) }
	in, msg := bannerInput(c)
	if msg != "" {
		return h.invalid(c, "admin.banners.create", msg, again)
	}
	files, err := h.media(c)
	if err != nil {
		return h.invalid(c, "admin.banners.create", err.Error(), again)
	}
	if len(files) == 0 {
		return h.invalid(c, "admin.banners.create", "Attach at least one image or video.", again)
	}
	in.Media = files
	v, err := adminOf(c).Stores.MainBanners.Create(c.UserContext(), in)
	if err != nil {
		return h.failed(c, "admin.banners.create", err, map[string]any{"title": in.Title}, again)
	}
	return h.done(c, "admin.banners.create", map[string]any{"banner_id": v.ID, "active": v.IsActive, "media": len(files)}, bannersPath)
}

// POST /admin/banners/:id
func (h *BannersHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	in, msg := bannerInput(c)
	if msg != "" {
		return h.invalid(c, "admin.banners.update", msg, again)
	}
	files, err := h.media(c)
	if err != nil {
		return h.invalid(c, "admin.banners.update", err.Error(), again)
	}
	in.Media = files
	v, err := adminOf(c).Stores.MainBanners.Update(c.UserContext(), id, in)
	if err != nil {
		return h.failed(c, "admin.banners.update", err, map[string]any{"banner_id": id}, again)
	}
	return h.done(c, "admin.banners.update", map[string]any{"banner_id": id, "active": v.IsActive, "media": len(files)}, bannersPath)
}

// POST /admin/banners/:id/delete
func (h *BannersHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.MainBanners.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.banners.delete", err, map[string]any{"banner_id": id}, again)
	}
	return h.done(c, "admin.banners.delete", map[string]any{"banner_id": id}, bannersPath)
}

// POST /admin/banners/:id/media/:mediaId/delete
func (h *BannersHandler) DeleteMedia(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	mediaID, okM := paramID(c, "mediaId")
	if !ok || !okM {
		return fiber.ErrNotFound
	}
	fields := map[string]any{"banner_id": id, "media_id": mediaID}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.MainBanners.DeleteMedia(c.UserContext(), id, mediaID); err != nil {
		return h.failed(c, "admin.banners.media.delete", err, fields, again)
	}
	return h.done(c, "admin.banners.media.delete", fields, fmt.Sprintf("%s?modal=edit&id=%d", bannersPath, id))
}
