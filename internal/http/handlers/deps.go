package handlers

import (
	"shopadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	AuthHandler          *AuthHandler
	HomeHandler          *HomeHandler
	ProductsHandler      *ProductsHandler
	CollectionsHandler   *CollectionsHandler
	ColorsHandler        *ColorsHandler
	SizesHandler         *SizesHandler
	ClothingTypesHandler *ClothingTypesHandler
	NewsHandler          *NewsHandler
	NewsTypesHandler     *NewsTypesHandler
	TagsHandler          *TagsHandler
	BannersHandler       *BannersHandler
	OrdersHandler        *OrdersHandler
}

func NewDeps(auth *services.AuthService, limits Limits) *Deps {
	b := base{auth: auth, limits: limits}
	return &Deps{
		AuthHandler:          &AuthHandler{Auth: auth},
		HomeHandler:          &HomeHandler{b},
		ProductsHandler:      &ProductsHandler{b},
		CollectionsHandler:   &CollectionsHandler{b},
		ColorsHandler:        &ColorsHandler{b},
		SizesHandler:         &SizesHandler{b},
		ClothingTypesHandler: &ClothingTypesHandler{b},
		NewsHandler:          &NewsHandler{b},
		NewsTypesHandler:     &NewsTypesHandler{b},
		TagsHandler:          &TagsHandler{b},
		BannersHandler:       &BannersHandler{b},
		OrdersHandler:        &OrdersHandler{b},
	}
}

// Mount registers every admin page under r, which must already require auth.
func (d *Deps) Mount(r fiber.Router) {
	r.Get("/", d.HomeHandler.Home)

	p := d.ProductsHandler
	r.Get("/products", p.List)
	r.Post("/products", p.Create)
	r.Post("/products/:id", p.Update)
	r.Post("/products/:id/delete", p.Delete)
	r.Post("/products/:id/media/:mediaId/delete", p.DeleteMedia)
	r.Post("/products/:id/colors", p.AddColors)
	r.Post("/products/:id/colors/:colorId/delete", p.RemoveColor)
	r.Post("/products/:id/sizes", p.AddSizes)
	r.Post("/products/:id/sizes/:sizeId/delete", p.RemoveSize)

	col := d.CollectionsHandler
	r.Get("/collections", col.List)
	r.Post("/collections", col.Create)
	r.Post("/collections/:id", col.Update)
	r.Post("/collections/:id/delete", col.Delete)
	r.Post("/collections/:id/media/:mediaId/delete", col.DeleteMedia)
	r.Post("/collections/:id/products", col.AddProduct)
	r.Post("/collections/:id/products/:productId/delete", col.RemoveProduct)

	// defaults must be registered before the :id routes
	colors := d.ColorsHandler
	r.Get("/colors", colors.List)
	r.Post("/colors", colors.Create)
	r.Post("/colors/defaults", colors.Defaults)
	r.Post("/colors/:id", colors.Update)
	r.Post("/colors/:id/delete", colors.Delete)

	sizes := d.SizesHandler
	r.Get("/sizes", sizes.List)
	r.Post("/sizes", sizes.Create)
	r.Post("/sizes/defaults", sizes.Defaults)
	r.Post("/sizes/:id", sizes.Update)
	r.Post("/sizes/:id/delete", sizes.Delete)

	ct := d.ClothingTypesHandler
	r.Get("/clothing-types", ct.List)
	r.Post("/clothing-types", ct.Create)
	r.Post("/clothing-types/defaults", ct.Defaults)
	r.Post("/clothing-types/:id", ct.Update)
	r.Post("/clothing-types/:id/delete", ct.Delete)

	n := d.NewsHandler
	r.Get("/news", n.List)
	r.Post("/news", n.Create)
	r.Post("/news/:id", n.Update)
	r.Post("/news/:id/delete", n.Delete)
	r.Post("/news/:id/media/:mediaId/delete", n.DeleteMedia)

	nt := d.NewsTypesHandler
	r.Get("/news-types", nt.List)
	r.Post("/news-types", nt.Create)
	r.Post("/news-types/:id", nt.Update)
	r.Post("/news-types/:id/delete", nt.Delete)

	tags := d.TagsHandler
	r.Get("/tags", tags.List)
	r.Post("/tags", tags.Create)
	r.Post("/tags/:id", tags.Update)
	r.Post("/tags/:id/delete", tags.Delete)

	bn := d.BannersHandler
	r.Get("/banners", bn.List)
	r.Post("/banners", bn.Create)
	r.Post("/banners/:id", bn.Update)
	r.Post("/banners/:id/delete", bn.Delete)
	r.Post("/banners/:id/media/:mediaId/delete", bn.DeleteMedia)

	o := d.OrdersHandler
	r.Get("/orders", o.List)
	r.Post("/orders/:id/status", o.UpdateStatus)
}
