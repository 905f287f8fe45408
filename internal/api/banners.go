package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/domain"
)

type MainBannerList struct {
	MainBanners []domain.MainBanner `json:"mainBanners"`
	domain.Page
}

type MainBannerInput struct {
	Title           string
	IsActive        bool
	DeletedMediaIDs []int64
	Media           []File
}

func (in MainBannerInput) Form() (*Form, error) {
	f := NewForm().Set("title", in.Title).SetBool("isActive", in.IsActive)
	if len(in.DeletedMediaIDs) > 0 {
		if err := f.SetJSON("deletedMediaIds", in.DeletedMediaIDs); err != nil {
			return nil, err
		}
	}
	f.Attach(in.Media...)
	return f, nil
}

func (c *Client) ListMainBanners(ctx context.Context, page, limit int) (*MainBannerList, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	var out MainBannerList
	err := c.do(ctx, request{method: fiber.MethodGet, path: "api/main-banner", access: authed, query: pageQuery(nil, page, limit, "")}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ActiveMainBanner(ctx context.Context) (*domain.MainBanner, error) {
	var out domain.MainBanner
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/main-banner/active", access: authed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMainBanner(ctx context.Context, bannerID int64) (*domain.MainBanner, error) {
	var out domain.MainBanner
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/main-banner/" + id(bannerID), access: authed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMainBanner(ctx context.Context, in MainBannerInput) (*domain.MainBanner, error) {
	form, err := in.Form()
	if err != nil {
		return nil, err
	}
	var out domain.MainBanner
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/main-banner", access: authed, form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMainBanner(ctx context.Context, bannerID int64, in MainBannerInput) (*domain.MainBanner, error) {
	form, err := in.Form()
	if err != nil {
		return nil, err
	}
	var out domain.MainBanner
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/main-banner/" + id(bannerID), access: authed, form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMainBanner(ctx context.Context, bannerID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/main-banner/" + id(bannerID), access: authed}, nil)
}

func (c *Client) DeleteMainBannerMedia(ctx context.Context, bannerID, mediaID int64) error {
	return c.do(ctx, request{
		method: fiber.MethodDelete,
		path:   "api/main-banner/" + id(bannerID) + "/media/" + id(mediaID),
		access: authed,
	}, nil)
}
