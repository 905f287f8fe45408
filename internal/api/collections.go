package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/domain"
)

type CollectionList struct {
	Collections []domain.Collection `json:"collections"`
	domain.Page
}

type CollectionInput struct {
	Name            string
	Description     string
	DeletedMediaIDs []int64
	Media           []File
}

func (in CollectionInput) Form() (*Form, error) {
	f := NewForm().Set("name", in.Name).Set("description", in.Description)
	if len(in.DeletedMediaIDs) > 0 {
		if err := f.SetJSON("deletedMediaIds", in.DeletedMediaIDs); err != nil {
			return nil, err
		}
	}
	f.Attach(in.Media...)
	return f, nil
}

func (c *Client) ListCollections(ctx context.Context, page, limit int) (*CollectionList, error) {
	var out CollectionList
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/collection", query: pageQuery(nil, page, limit, "")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCollection(ctx context.Context, collectionID int64) (*domain.Collection, error) {
	var out domain.Collection
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/collection/" + id(collectionID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCollection(ctx context.Context, in CollectionInput) (*domain.Collection, error) {
	form, err := in.Form()
	if err != nil {
		return nil, err
	}
	var out domain.Collection
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/collection", access: authed, form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCollection(ctx context.Context, collectionID int64, in CollectionInput) (*domain.Collection, error) {
	form, err := in.Form()
	if err != nil {
		return nil, err
	}
	var out domain.Collection
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/collection/" + id(collectionID), access: authed, form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCollection(ctx context.Context, collectionID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/collection/" + id(collectionID), access: authed}, nil)
}

func (c *Client) DeleteCollectionMedia(ctx context.Context, collectionID, mediaID int64) error {
	return c.do(ctx, request{
		method: fiber.MethodDelete,
		path:   "api/collection/" + id(collectionID) + "/media/" + id(mediaID),
		access: authed,
	}, nil)
}

func (c *Client) AddProductToCollection(ctx context.Context, collectionID, productID int64) error {
	return c.do(ctx, request{
		method: fiber.MethodPost,
		path:   "api/collection/" + id(collectionID) + "/products/" + id(productID),
		access: authed,
	}, nil)
}

func (c *Client) RemoveProductFromCollection(ctx context.Context, collectionID, productID int64) error {
	return c.do(ctx, request{
		method: fiber.MethodDelete,
		path:   "api/collection/" + id(collectionID) + "/products/" + id(productID),
		access: authed,
	}, nil)
}

func (c *Client) ListCollectionProducts(ctx context.Context, collectionID int64, page, limit int) (*ProductList, error) {
	var out ProductList
	err := c.do(ctx, request{
		method: fiber.MethodGet,
		path:   "api/collection/" + id(collectionID) + "/products",
		query:  pageQuery(nil, page, limit, ""),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAvailableProducts lists products that belong to no collection.
func (c *Client) ListAvailableProducts(ctx context.Context, page, limit int) (*ProductList, error) {
	return c.ListProducts(ctx, ProductFilters{Page: page, Limit: limit, NotInCollection: true})
}
