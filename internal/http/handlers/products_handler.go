package handlers

import (
	"context"
	"fmt"
	"strconv"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
	"shopadmin/internal/services"
	"shopadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const productsPath = "/admin/products"

type ProductsHandler struct{ base }

func productFilters(c *fiber.Ctx) api.ProductFilters {
	f := api.ProductFilters{Page: validate.Page(c.Query("page")), Limit: 10}
	if g, ok := validate.Gender(c.Query("gender")); ok {
		f.Gender = string(g)
	}
	if s, ok := validate.ProductStatus(c.Query("status")); ok {
		f.Status = string(s)
	}
	if id, ok := validate.ID(c.Query("clothingTypeId")); ok {
		f.ClothingTypeID = id
	}
	if id, ok := validate.ID(c.Query("collectionId")); ok {
		f.CollectionID = id
	}
	if q, ok := validate.Q(c.Query("search")); ok {
		f.Search = q
	}
	return f
}

// lookups loads the option lists of the product form concurrently.
func lookups(ctx context.Context, a *services.Admin) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Stores.ClothingTypes.Fetch(ctx) })
	g.Go(func() error { return a.Stores.Colors.Fetch(ctx) })
	g.Go(func() error { return a.Stores.Sizes.Fetch(ctx) })
	g.Go(func() error { return a.Stores.Collections.Fetch(ctx, 1, 100) })
	return g.Wait()
}

func (h *ProductsHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	a := adminOf(c)
	s := a.Stores.Products
	data := fiber.Map{
		"Title": "Products", "Nav": "products",
		"State": s.Snapshot(), "Filter": productFilters(c),
		"Modal": m, "Form": form, "Alert": alert,
		"Genders":  []domain.Gender{domain.GenderMan, domain.GenderWoman},
		"Statuses": []domain.ProductStatus{domain.ProductAvailable, domain.ProductSold, domain.ProductDeleted},
	}
	if m.ID != 0 {
		if p, ok := s.Find(m.ID); ok {
			data["Target"] = p
		}
		if p, ok := s.Current(); ok && p.ID == m.ID {
			data["Target"] = p
		}
	}
	if m.Is("create") || m.Is("edit") || m.Is("view") {
		data["ClothingTypes"] = a.Stores.ClothingTypes.Items()
		data["Colors"] = a.Stores.Colors.Items()
		data["Sizes"] = a.Stores.Sizes.Items()
		data["Collections"] = a.Stores.Collections.Items()
	}
	return renderStatus(c, status, "products", data)
}

// GET /admin/products
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	a := adminOf(c)
	ctx := c.UserContext()
	m := modalOf(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{}, nil, alert) }

	if err := a.Stores.Products.Fetch(ctx, productFilters(c)); err != nil {
		return h.failed(c, "admin.products.list", err, nil, again)
	}
	if m.Is("create") || m.Is("edit") || m.Is("view") {
		if err := lookups(ctx, a); err != nil {
			return h.failed(c, "admin.products.lookups", err, nil, again)
		}
	}
	var form map[string]string
	if m.Is("view") || m.Is("edit") {
		p, err := a.Stores.Products.Load(ctx, m.ID)
		if err != nil {
			return h.failed(c, "admin.products.load", err, map[string]any{"product_id": m.ID}, again)
		}
		form = productForm(p)
	}
	return h.page(c, fiber.StatusOK, m, form, "")
}

func productForm(p domain.Product) map[string]string {
	f := map[string]string{
		"name":           p.Name,
		"gender":         string(p.Gender),
		"priceKZT":       strconv.FormatFloat(p.PriceKZT, 'f', -1, 64),
		"priceUSD":       strconv.FormatFloat(p.PriceUSD, 'f', -1, 64),
		"description":    p.Description,
		"color":          p.Color,
		"ingredients":    p.Ingredients,
		"status":         string(p.Status),
		"clothingTypeId": "",
		"collectionId":   "",
	}
	if p.ClothingTypeID != nil {
		f["clothingTypeId"] = strconv.FormatInt(*p.ClothingTypeID, 10)
	}
	if p.CollectionID != nil {
		f["collectionId"] = strconv.FormatInt(*p.CollectionID, 10)
	}
	for _, s := range p.Sizes {
		f[fmt.Sprintf("size:%d", s.ID)] = "on"
	}
	for _, c := range p.Colors {
		f[fmt.Sprintf("color:%d", c.ID)] = "on"
	}
	return f
}

// submittedProduct snapshots a posted product form, multi-selects included.
func submittedProduct(c *fiber.Ctx) map[string]string {
	f := formValues(c)
	for _, v := range formList(c, "sizeIds") {
		f["size:"+v] = "on"
	}
	for _, v := range formList(c, "colorIds") {
		f["color:"+v] = "on"
	}
	return f
}

func productInput(c *fiber.Ctx) (api.ProductInput, string) {
	var in api.ProductInput
	var ok bool
	if in.Name, ok = validate.Name(c.FormValue("name")); !ok {
		return in, "Name is required (up to 100 characters)."
	}
	if in.Gender, ok = validate.Gender(c.FormValue("gender")); !ok {
		return in, "Choose a gender."
	}
	kzt, okK := validate.Price(c.FormValue("priceKZT"))
	usd, okU := validate.Price(c.FormValue("priceUSD"))
	if !okK || !okU {
		return in, "Prices must be non-negative numbers."
	}
	in.PriceKZT, in.PriceUSD = kzt, usd
	if in.ClothingTypeID, ok = validate.OptionalID(c.FormValue("clothingTypeId")); !ok {
		return in, "Unknown clothing type."
	}
	if in.CollectionID, ok = validate.OptionalID(c.FormValue("collectionId")); !ok {
		return in, "Unknown collection."
	}
	if in.SizeIDs, ok = validate.IDs(formList(c, "sizeIds")); !ok {
		return in, "Unknown size."
	}
	if in.ColorIDs, ok = validate.IDs(formList(c, "colorIds")); !ok {
		return in, "Unknown color."
	}
	if in.Description, ok = validate.Text(c.FormValue("description"), 2000); !ok {
		return in, "Description is too long."
	}
	if in.Color, ok = validate.Text(c.FormValue("color"), 50); !ok {
		return in, "Color note is too long."
	}
	if in.Ingredients, ok = validate.Text(c.FormValue("ingredients"), 500); !ok {
		return in, "Ingredients are too long."
	}
	return in, ""
}

// POST /admin/products
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	a := adminOf(c)
	ctx := c.UserContext()
	form := submittedProduct(c)
	again := func(status int, alert string) error {
		_ = lookups(ctx, a)
		return h.page(c, status, modal{Kind: "create"}, form, alert)
	}
	in, msg := productInput(c)
	if msg != "" {
		return h.invalid(c, "admin.products.create", msg, again)
	}
	files, err := h.media(c)
	if err != nil {
		return h.invalid(c, "admin.products.create", err.Error(), again)
	}
	in.Media = files

	p, err := a.Stores.Products.Create(ctx, in)
	if err != nil {
		return h.failed(c, "admin.products.create", err, map[string]any{"name": in.Name}, again)
	}
	return h.done(c, "admin.products.create", map[string]any{"product_id": p.ID, "media": len(files)}, productsPath)
}

// POST /admin/products/:id
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	a := adminOf(c)
	ctx := c.UserContext()
	form := submittedProduct(c)
	again := func(status int, alert string) error {
		_ = lookups(ctx, a)
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	in, msg := productInput(c)
	if msg != "" {
		return h.invalid(c, "admin.products.update", msg, again)
	}
	files, err := h.media(c)
	if err != nil {
		return h.invalid(c, "admin.products.update", err.Error(), again)
	}
	in.Media = files

	if _, err := a.Stores.Products.Update(ctx, id, in); err != nil {
		return h.failed(c, "admin.products.update", err, map[string]any{"product_id": id}, again)
	}
	return h.done(c, "admin.products.update", map[string]any{"product_id": id, "media": len(files)}, productsPath)
}

// POST /admin/products/:id/delete
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	a := adminOf(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := a.Stores.Products.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.products.delete", err, map[string]any{"product_id": id}, again)
	}
	return h.done(c, "admin.products.delete", map[string]any{"product_id": id}, productsPath)
}

// POST /admin/products/:id/media/:mediaId/delete
func (h *ProductsHandler) DeleteMedia(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	mediaID, okM := paramID(c, "mediaId")
	if !ok || !okM {
		return fiber.ErrNotFound
	}
	a := adminOf(c)
	fields := map[string]any{"product_id": id, "media_id": mediaID}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, nil, alert)
	}
	if err := a.Stores.Products.DeleteMedia(c.UserContext(), id, mediaID); err != nil {
		return h.failed(c, "admin.products.media.delete", err, fields, again)
	}
	return h.done(c, "admin.products.media.delete", fields, fmt.Sprintf("%s?modal=edit&id=%d", productsPath, id))
}

// POST /admin/products/:id/colors
func (h *ProductsHandler) AddColors(c *fiber.Ctx) error {
	return h.attach(c, "colors", func(ctx context.Context, a *services.Admin, id int64, ids []int64) (domain.Product, error) {
		return a.Stores.Colors.AddToProduct(ctx, id, ids)
	}, "colorIds")
}

// POST /admin/products/:id/sizes
func (h *ProductsHandler) AddSizes(c *fiber.Ctx) error {
	return h.attach(c, "sizes", func(ctx context.Context, a *services.Admin, id int64, ids []int64) (domain.Product, error) {
		return a.Stores.Sizes.AddToProduct(ctx, id, ids)
	}, "sizeIds")
}

func (h *ProductsHandler) attach(c *fiber.Ctx, what string, add func(context.Context, *services.Admin, int64, []int64) (domain.Product, error), key string) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	a := adminOf(c)
	action := "admin.products." + what + ".add"
	back := fmt.Sprintf("%s?modal=view&id=%d", productsPath, id)
	again := func(status int, alert string) error {
		_ = lookups(c.UserContext(), a)
		return h.page(c, status, modal{Kind: "view", ID: id}, nil, alert)
	}
	ids, ok := validate.IDs(formList(c, key))
	if !ok || len(ids) == 0 {
		return h.invalid(c, action, "Pick at least one "+what[:len(what)-1]+".", again)
	}
	p, err := add(c.UserContext(), a, id, ids)
	if err != nil {
		return h.failed(c, action, err, map[string]any{"product_id": id}, again)
	}
	a.Stores.Products.Replace(p)
	return h.done(c, action, map[string]any{"product_id": id, "ids": ids}, back)
}

// POST /admin/products/:id/colors/:colorId/delete
func (h *ProductsHandler) RemoveColor(c *fiber.Ctx) error {
	return h.detach(c, "color", "colorId", func(ctx context.Context, a *services.Admin, id, ref int64) error {
		return a.Stores.Colors.RemoveFromProduct(ctx, id, ref)
	})
}

// POST /admin/products/:id/sizes/:sizeId/delete
func (h *ProductsHandler) RemoveSize(c *fiber.Ctx) error {
	return h.detach(c, "size", "sizeId", func(ctx context.Context, a *services.Admin, id, ref int64) error {
		return a.Stores.Sizes.RemoveFromProduct(ctx, id, ref)
	})
}

func (h *ProductsHandler) detach(c *fiber.Ctx, what, param string, remove func(context.Context, *services.Admin, int64, int64) error) error {
	id, ok := paramID(c, "id")
	ref, okR := paramID(c, param)
	if !ok || !okR {
		return fiber.ErrNotFound
	}
	a := adminOf(c)
	ctx := c.UserContext()
	action := "admin.products." + what + ".remove"
	fields := map[string]any{"product_id": id, what + "_id": ref}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "view", ID: id}, nil, alert)
	}
	if err := remove(ctx, a, id, ref); err != nil {
		return h.failed(c, action, err, fields, again)
	}
	// the backend answers without the product, so reload it for the view modal
	_, _ = a.Stores.Products.Load(ctx, id)
	return h.done(c, action, fields, fmt.Sprintf("%s?modal=view&id=%d", productsPath, id))
}
