package handlers

import (
	"context"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

type HomeHandler struct{ base }

// familyCount is one tile on the home page.
type familyCount struct {
	Title string
	Path  string
	Count int
}

type counter interface {
	Page() domain.Page
}

func (h *HomeHandler) page(c *fiber.Ctx, status int, me *domain.UserInfo, alert string) error {
	s := adminOf(c).Stores
	tiles := []struct {
		title, path string
		st          counter
	}{
		{"Products", productsPath, s.Products},
		{"Collections", collectionsPath, s.Collections},
		{"Clothing types", clothingTypesPath, s.ClothingTypes},
		{"Colors", colorsPath, s.Colors},
		{"Sizes", sizesPath, s.Sizes},
		{"News", newsPath, s.News},
		{"News types", newsTypesPath, s.NewsTypes},
		{"Tags", tagsPath, s.Tags},
		{"Banners", bannersPath, s.MainBanners},
		{"Orders", ordersPath, s.Orders},
	}
	counts := make([]familyCount, 0, len(tiles))
	for _, t := range tiles {
		counts = append(counts, familyCount{Title: t.title, Path: t.path, Count: t.st.Page().TotalCount})
	}
	return renderStatus(c, status, "home", fiber.Map{
		"Title": "Overview", "Nav": "home", "Me": me, "Counts": counts, "Alert": alert,
	})
}

// Home fetches the first page of every family and shows their totals.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	a := adminOf(c)
	s := a.Stores
	var me *domain.UserInfo
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		me, err = a.Client.Me(ctx)
		return err
	})
	for _, fetch := range []func(context.Context) error{
		func(ctx context.Context) error { return s.Products.Fetch(ctx, api.ProductFilters{Page: 1, Limit: 10}) },
		func(ctx context.Context) error { return s.Collections.Fetch(ctx, 1, 10) },
		s.ClothingTypes.Fetch,
		s.Colors.Fetch,
		s.Sizes.Fetch,
		func(ctx context.Context) error { return s.News.Fetch(ctx, api.NewsFilters{Page: 1, Limit: 10}) },
		func(ctx context.Context) error { return s.NewsTypes.Fetch(ctx, 1, 20, "") },
		func(ctx context.Context) error { return s.Tags.Fetch(ctx, 1, 20, "") },
		func(ctx context.Context) error { return s.MainBanners.Fetch(ctx, 1, 10) },
		func(ctx context.Context) error { return s.Orders.Fetch(ctx, api.OrderParams{Page: 1, Limit: 10}) },
	} {
		fetch := fetch
		g.Go(func() error { return fetch(ctx) })
	}
	if err := g.Wait(); err != nil {
		return h.failed(c, "admin.home", err, nil, func(status int, alert string) error {
			return h.page(c, status, me, alert)
		})
	}
	return h.page(c, fiber.StatusOK, me, "")
}
