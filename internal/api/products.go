package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/domain"
)

type ProductFilters struct {
	Gender          string
	Size            string
	Color           string
	Status          string
	ClothingTypeID  int64
	CollectionID    int64
	MinPrice        float64
	MaxPrice        float64
	Currency        string
	Search          string
	NotInCollection bool
	Page            int
	Limit           int
}

func (f ProductFilters) values() url.Values {
	q := pageQuery(nil, f.Page, f.Limit, f.Search)
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("gender", f.Gender)
	set("size", f.Size)
	set("color", f.Color)
	set("status", f.Status)
	set("currency", f.Currency)
	if f.ClothingTypeID > 0 {
		q.Set("clothingTypeId", id(f.ClothingTypeID))
	}
	if f.CollectionID > 0 {
		q.Set("collectionId", id(f.CollectionID))
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.NotInCollection {
		q.Set("notInCollection", "true")
	}
	return q
}

type ProductList struct {
	Products []domain.Product `json:"products"`
	domain.Page
}

// ProductInput is the create/update payload. Media holds newly attached files only.
type ProductInput struct {
	Name           string
	PriceKZT       float64
	PriceUSD       float64
	Description    string
	Color          string
	Ingredients    string
	Gender         domain.Gender
	ClothingTypeID *int64
	CollectionID   *int64
	SizeIDs        []int64
	ColorIDs       []int64
	Media          []File
}

func (in ProductInput) Form() (*Form, error) {
	f := NewForm().
		Set("name", in.Name).
		SetFloat("priceKZT", in.PriceKZT).
		SetFloat("priceUSD", in.PriceUSD).
		Set("description", in.Description).
		Set("color", in.Color).
		Set("ingredients", in.Ingredients).
		Set("gender", string(in.Gender)).
		SetID("clothingTypeId", in.ClothingTypeID).
		SetID("collectionId", in.CollectionID)
	if err := f.SetJSON("sizeIds", ids(in.SizeIDs)); err != nil {
		return nil, err
	}
	if err := f.SetJSON("colorIds", ids(in.ColorIDs)); err != nil {
		return nil, err
	}
	f.Attach(in.Media...)
	return f, nil
}

func ids(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, f ProductFilters) (*ProductList, error) {
	var out ProductList
	err := c.do(ctx, request{method: fiber.MethodGet, path: "api/product", query: f.values()}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/product/" + id(productID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	form, err := in.Form()
	if err != nil {
		return nil, err
	}
	var out domain.Product
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/product", access: authed, form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID int64, in ProductInput) (*domain.Product, error) {
	form, err := in.Form()
	if err != nil {
		return nil, err
	}
	var out domain.Product
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/product/" + id(productID), access: authed, form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/product/" + id(productID), access: authed}, nil)
}

func (c *Client) DeleteProductMedia(ctx context.Context, productID, mediaID int64) error {
	return c.do(ctx, request{
		method: fiber.MethodDelete,
		path:   "api/product/" + id(productID) + "/media/" + id(mediaID),
		access: authed,
	}, nil)
}
