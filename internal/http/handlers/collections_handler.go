package handlers

import (
	"fmt"

	"shopadmin/internal/api"
	"shopadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const collectionsPath = "/admin/collections"

type CollectionsHandler struct{ base }

func (h *CollectionsHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	s := adminOf(c).Stores.Collections
	data := fiber.Map{
		"Title": "Collections", "Nav": "collections",
		"State": s.Snapshot(), "Modal": m, "Form": form, "Alert": alert,
	}
	if m.ID != 0 {
		if v, ok := s.Find(m.ID); ok {
			data["Target"] = v
		}
		if v, ok := s.Current(); ok && v.ID == m.ID {
			data["Target"] = v
		}
	}
	if m.Is("products") {
		data["Available"] = s.Products()
	}
	return renderStatus(c, status, "collections", data)
}

// GET /admin/collections
func (h *CollectionsHandler) List(c *fiber.Ctx) error {
	a := adminOf(c)
	ctx := c.UserContext()
	s := a.Stores.Collections
	m := modalOf(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{}, nil, alert) }

	if err := s.Fetch(ctx, validate.Page(c.Query("page")), 10); err != nil {
		return h.failed(c, "admin.collections.list", err, nil, again)
	}
	var form map[string]string
	if m.ID != 0 && !m.Is("delete") {
		v, err := s.Load(ctx, m.ID)
		if err != nil {
			return h.failed(c, "admin.collections.load", err, map[string]any{"collection_id": m.ID}, again)
		}
		form = map[string]string{"name": v.Name, "description": v.Description}
	}
	if m.Is("products") {
		if err := s.FetchAvailable(ctx, validate.Page(c.Query("ppage")), 20); err != nil {
			return h.failed(c, "admin.collections.available", err, map[string]any{"collection_id": m.ID}, again)
		}
	}
	return h.page(c, fiber.StatusOK, m, form, "")
}

func collectionInput(c *fiber.Ctx) (api.CollectionInput, string) {
	var in api.CollectionInput
	var ok bool
	if in.Name, ok = validate.Name(c.FormValue("name")); !ok {
		return in, "Name is required (up to 100 characters)."
	}
	if in.Description, ok = validate.Text(c.FormValue("description"), 2000); !ok {
		return in, "Description is too long."
	}
	if in.DeletedMediaIDs, ok = validate.IDs(formList(c, "deletedMediaIds")); !ok {
		return in, "Unknown media file."
	}
	return in, ""
}

// POST /admin/collections
func (h *CollectionsHandler) Create(c *fiber.Ctx) error {
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "create"}, form, alert)
	}
	in, msg := collectionInput(c)
	if msg != "" {
		return h.invalid(c, "admin.collections.create", msg, again)
	}
	files, err := h.media(c)
	if err != nil {
		return h.invalid(c, "admin.collections.create", err.Error(), again)
	}
	in.Media = files
	v, err := adminOf(c).Stores.Collections.Create(c.UserContext(), in)
	if err != nil {
		return h.failed(c, "admin.collections.create", err, map[string]any{"name": in.Name}, again)
	}
	return h.done(c, "admin.collections.create", map[string]any{"collection_id": v.ID, "media": len(files)}, collectionsPath)
}

// POST /admin/collections/:id
func (h *CollectionsHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	in, msg := collectionInput(c)
	if msg != "" {
		return h.invalid(c, "admin.collections.update", msg, again)
	}
	files, err := h.media(c)
	if err != nil {
		return h.invalid(c, "admin.collections.update", err.Error(), again)
	}
	in.Media = files
	if _, err := adminOf(c).Stores.Collections.Update(c.UserContext(), id, in); err != nil {
		return h.failed(c, "admin.collections.update", err, map[string]any{"collection_id": id}, again)
	}
	return h.done(c, "admin.collections.update", map[string]any{"collection_id": id, "media": len(files), "media_removed": len(in.DeletedMediaIDs)}, collectionsPath)
}

// POST /admin/collections/:id/delete
func (h *CollectionsHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.Collections.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.collections.delete", err, map[string]any{"collection_id": id}, again)
	}
	return h.done(c, "admin.collections.delete", map[string]any{"collection_id": id}, collectionsPath)
}

// POST /admin/collections/:id/media/:mediaId/delete
func (h *CollectionsHandler) DeleteMedia(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	mediaID, okM := paramID(c, "mediaId")
	if !ok || !okM {
		return fiber.ErrNotFound
	}
	fields := map[string]any{"collection_id": id, "media_id": mediaID}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.Collections.DeleteMedia(c.UserContext(), id, mediaID); err != nil {
		return h.failed(c, "admin.collections.media.delete", err, fields, again)
	}
	return h.done(c, "admin.collections.media.delete", fields, fmt.Sprintf("%s?modal=edit&id=%d", collectionsPath, id))
}

// POST /admin/collections/:id/products
func (h *CollectionsHandler) AddProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	back := fmt.Sprintf("%s?modal=products&id=%d", collectionsPath, id)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "products", ID: id}, nil, alert)
	}
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return h.invalid(c, "admin.collections.product.add", "Pick a product.", again)
	}
	fields := map[string]any{"collection_id": id, "product_id": pid}
	if err := adminOf(c).Stores.Collections.AddProduct(c.UserContext(), id, pid); err != nil {
		return h.failed(c, "admin.collections.product.add", err, fields, again)
	}
	return h.done(c, "admin.collections.product.add", fields, back)
}

// POST /admin/collections/:id/products/:productId/delete
func (h *CollectionsHandler) RemoveProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	pid, okP := paramID(c, "productId")
	if !ok || !okP {
		return fiber.ErrNotFound
	}
	fields := map[string]any{"collection_id": id, "product_id": pid}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "products", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.Collections.RemoveProduct(c.UserContext(), id, pid); err != nil {
		return h.failed(c, "admin.collections.product.remove", err, fields, again)
	}
	return h.done(c, "admin.collections.product.remove", fields, fmt.Sprintf("%s?modal=products&id=%d", collectionsPath, id))
}
