package handlers

import (
	"shopadmin/internal/api"
	"shopadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const (
	colorsPath        = "/admin/colors"
	sizesPath         = "/admin/sizes"
	clothingTypesPath = "/admin/clothing-types"
)

// lookupPage renders one of the small name-only families.
func lookupPage(c *fiber.Ctx, status int, view, title string, data fiber.Map, m modal, form map[string]string, alert string) error {
	data["Title"] = title
	data["Nav"] = view
	data["Modal"] = m
	data["Form"] = form
	data["Alert"] = alert
	return renderStatus(c, status, view, data)
}

// ----- colors -----

type ColorsHandler struct{ base }

func (h *ColorsHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	s := adminOf(c).Stores.Colors
	data := fiber.Map{"State": s.Snapshot()}
	if v, ok := s.Find(m.ID); ok {
		data["Target"] = v
		if form == nil {
			form = map[string]string{"name": v.Name, "hexCode": v.HexCode}
		}
	}
	return lookupPage(c, status, "colors", "Colors", data, m, form, alert)
}

// GET /admin/colors
func (h *ColorsHandler) List(c *fiber.Ctx) error {
	if err := adminOf(c).Stores.Colors.Fetch(c.UserContext()); err != nil {
		return h.failed(c, "admin.colors.list", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.page(c, fiber.StatusOK, modalOf(c), nil, "")
}

func colorInput(c *fiber.Ctx) (api.ColorInput, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return api.ColorInput{}, "Name is required (up to 100 characters)."
	}
	in := api.ColorInput{Name: name}
	if raw := c.FormValue("hexCode"); raw != "" {
		if in.HexCode, ok = validate.HexColor(raw); !ok {
			return in, "Hex code must look like #FF0000."
		}
	}
	return in, ""
}

// POST /admin/colors
func (h *ColorsHandler) Create(c *fiber.Ctx) error {
	form := formValues(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{Kind: "create"}, form, alert) }
	in, msg := colorInput(c)
	if msg != "" {
		return h.invalid(c, "admin.colors.create", msg, again)
	}
	v, err := adminOf(c).Stores.Colors.Create(c.UserContext(), in)
	if err != nil {
		return h.failed(c, "admin.colors.create", err, map[string]any{"name": in.Name}, again)
	}
	return h.done(c, "admin.colors.create", map[string]any{"color_id": v.ID, "hex": v.HexCode}, colorsPath)
}

// POST /admin/colors/:id
func (h *ColorsHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	in, msg := colorInput(c)
	if msg != "" {
		return h.invalid(c, "admin.colors.update", msg, again)
	}
	if _, err := adminOf(c).Stores.Colors.Update(c.UserContext(), id, in); err != nil {
		return h.failed(c, "admin.colors.update", err, map[string]any{"color_id": id}, again)
	}
	return h.done(c, "admin.colors.update", map[string]any{"color_id": id}, colorsPath)
}

// POST /admin/colors/:id/delete
func (h *ColorsHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.Colors.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.colors.delete", err, map[string]any{"color_id": id}, again)
	}
	return h.done(c, "admin.colors.delete", map[string]any{"color_id": id}, colorsPath)
}

// POST /admin/colors/defaults
func (h *ColorsHandler) Defaults(c *fiber.Ctx) error {
	n, err := adminOf(c).Stores.Colors.CreateDefaults(c.UserContext())
	if err != nil {
		return h.failed(c, "admin.colors.defaults", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.done(c, "admin.colors.defaults", map[string]any{"created": n}, colorsPath)
}

// ----- sizes -----

type SizesHandler struct{ base }

func (h *SizesHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	s := adminOf(c).Stores.Sizes
	data := fiber.Map{"State": s.Snapshot()}
	if v, ok := s.Find(m.ID); ok {
		data["Target"] = v
		if form == nil {
			form = map[string]string{"name": v.Name}
		}
	}
	return lookupPage(c, status, "sizes", "Sizes", data, m, form, alert)
}

// GET /admin/sizes
func (h *SizesHandler) List(c *fiber.Ctx) error {
	if err := adminOf(c).Stores.Sizes.Fetch(c.UserContext()); err != nil {
		return h.failed(c, "admin.sizes.list", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.page(c, fiber.StatusOK, modalOf(c), nil, "")
}

// POST /admin/sizes
func (h *SizesHandler) Create(c *fiber.Ctx) error {
	form := formValues(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{Kind: "create"}, form, alert) }
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.invalid(c, "admin.sizes.create", "Name is required (up to 100 characters).", again)
	}
	v, err := adminOf(c).Stores.Sizes.Create(c.UserContext(), api.SizeInput{Name: name})
	if err != nil {
		return h.failed(c, "admin.sizes.create", err, map[string]any{"name": name}, again)
	}
	return h.done(c, "admin.sizes.create", map[string]any{"size_id": v.ID}, sizesPath)
}

// POST /admin/sizes/:id
func (h *SizesHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.invalid(c, "admin.sizes.update", "Name is required (up to 100 characters).", again)
	}
	if _, err := adminOf(c).Stores.Sizes.Update(c.UserContext(), id, api.SizeInput{Name: name}); err != nil {
		return h.failed(c, "admin.sizes.update", err, map[string]any{"size_id": id}, again)
	}
	return h.done(c, "admin.sizes.update", map[string]any{"size_id": id}, sizesPath)
}

// POST /admin/sizes/:id/delete
func (h *SizesHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.Sizes.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.sizes.delete", err, map[string]any{"size_id": id}, again)
	}
	return h.done(c, "admin.sizes.delete", map[string]any{"size_id": id}, sizesPath)
}

// POST /admin/sizes/defaults
func (h *SizesHandler) Defaults(c *fiber.Ctx) error {
	n, err := adminOf(c).Stores.Sizes.CreateDefaults(c.UserContext())
	if err != nil {
		return h.failed(c, "admin.sizes.defaults", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.done(c, "admin.sizes.defaults", map[string]any{"created": n}, sizesPath)
}

// ----- clothing types -----

type ClothingTypesHandler struct{ base }

func (h *ClothingTypesHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	s := adminOf(c).Stores.ClothingTypes
	data := fiber.Map{"State": s.Snapshot(), "Stats": s.Statistics()}
	if v, ok := s.Find(m.ID); ok {
		data["Target"] = v
		if form == nil {
			form = map[string]string{"name": v.Name}
		}
	}
	return lookupPage(c, status, "clothing_types", "Clothing types", data, m, form, alert)
}

// GET /admin/clothing-types
//
// The list and the per-type product counts load side by side.
func (h *ClothingTypesHandler) List(c *fiber.Ctx) error {
	s := adminOf(c).Stores.ClothingTypes
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error { return s.Fetch(ctx) })
	g.Go(func() error { return s.LoadStatistics(ctx) })
	if err := g.Wait(); err != nil {
		return h.failed(c, "admin.clothing_types.list", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.page(c, fiber.StatusOK, modalOf(c), nil, "")
}

// POST /admin/clothing-types
func (h *ClothingTypesHandler) Create(c *fiber.Ctx) error {
	form := formValues(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{Kind: "create"}, form, alert) }
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.invalid(c, "admin.clothing_types.create", "Name is required (up to 100 characters).", again)
	}
	v, err := adminOf(c).Stores.ClothingTypes.Create(c.UserContext(), api.ClothingTypeInput{Name: name})
	if err != nil {
		return h.failed(c, "admin.clothing_types.create", err, map[string]any{"name": name}, again)
	}
	return h.done(c, "admin.clothing_types.create", map[string]any{"clothing_type_id": v.ID}, clothingTypesPath)
}

// POST /admin/clothing-types/:id
func (h *ClothingTypesHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.invalid(c, "admin.clothing_types.update", "Name is required (up to 100 characters).", again)
	}
	if _, err := adminOf(c).Stores.ClothingTypes.Update(c.UserContext(), id, api.ClothingTypeInput{Name: name}); err != nil {
		return h.failed(c, "admin.clothing_types.update", err, map[string]any{"clothing_type_id": id}, again)
	}
	return h.done(c, "admin.clothing_types.update", map[string]any{"clothing_type_id": id}, clothingTypesPath)
}

// POST /admin/clothing-types/:id/delete
//
// A type still used by products comes back as a 409 and is shown inline.
func (h *ClothingTypesHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.ClothingTypes.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.clothing_types.delete", err, map[string]any{"clothing_type_id": id}, again)
	}
	return h.done(c, "admin.clothing_types.delete", map[string]any{"clothing_type_id": id}, clothingTypesPath)
}

// POST /admin/clothing-types/defaults
func (h *ClothingTypesHandler) Defaults(c *fiber.Ctx) error {
	n, err := adminOf(c).Stores.ClothingTypes.CreateDefaults(c.UserContext())
	if err != nil {
		return h.failed(c, "admin.clothing_types.defaults", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.done(c, "admin.clothing_types.defaults", map[string]any{"created": n}, clothingTypesPath)
}
