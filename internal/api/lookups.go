package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/domain"
)

type ClothingTypeInput struct {
	Name string `json:"name"`
}

type ColorInput struct {
	Name    string `json:"name"`
	HexCode string `json:"hexCode,omitempty"`
}

type SizeInput struct {
	Name string `json:"name"`
}

// ----- clothing types -----

func (c *Client) ListClothingTypes(ctx context.Context) ([]domain.ClothingType, error) {
	var out []domain.ClothingType
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/clothing-type"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetClothingType(ctx context.Context, typeID int64) (*domain.ClothingType, error) {
	var out domain.ClothingType
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/clothing-type/" + id(typeID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClothingType(ctx context.Context, in ClothingTypeInput) (*domain.ClothingType, error) {
	var out domain.ClothingType
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/clothing-type", access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClothingType(ctx context.Context, typeID int64, in ClothingTypeInput) (*domain.ClothingType, error) {
	var out domain.ClothingType
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/clothing-type/" + id(typeID), access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClothingType(ctx context.Context, typeID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/clothing-type/" + id(typeID), access: authed}, nil)
}

type DefaultClothingTypes struct {
	Message      string                `json:"message"`
	CreatedTypes []domain.ClothingType `json:"createdTypes"`
}

func (c *Client) CreateDefaultClothingTypes(ctx context.Context) (*DefaultClothingTypes, error) {
	var out DefaultClothingTypes
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/clothing-type/create-defaults", access: authed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClothingTypeStatistics(ctx context.Context) ([]domain.ClothingTypeStat, error) {
	var out []domain.ClothingTypeStat
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/clothing-type/statistics"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ----- colors -----

func (c *Client) ListColors(ctx context.Context) ([]domain.Color, error) {
	var out []domain.Color
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/color"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateColor(ctx context.Context, in ColorInput) (*domain.Color, error) {
	var out domain.Color
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/color", access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateColor(ctx context.Context, colorID int64, in ColorInput) (*domain.Color, error) {
	var out domain.Color
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/color/" + id(colorID), access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteColor(ctx context.Context, colorID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/color/" + id(colorID), access: authed}, nil)
}

type DefaultColors struct {
	Message       string         `json:"message"`
	CreatedColors []domain.Color `json:"createdColors"`
}

func (c *Client) CreateDefaultColors(ctx context.Context) (*DefaultColors, error) {
	var out DefaultColors
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/color/create-defaults", access: authed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddColorsToProduct(ctx context.Context, productID int64, colorIDs []int64) (*domain.Product, error) {
	var out domain.Product
	body := map[string][]int64{"colorIds": ids(colorIDs)}
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/color/product/" + id(productID), access: authed, json: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveColorFromProduct(ctx context.Context, productID, colorID int64) error {
	return c.do(ctx, request{
		method: fiber.MethodDelete,
		path:   "api/color/product/" + id(productID) + "/color/" + id(colorID),
		access: authed,
	}, nil)
}

// ----- sizes -----

func (c *Client) ListSizes(ctx context.Context) ([]domain.Size, error) {
	var out []domain.Size
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/size"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSize(ctx context.Context, in SizeInput) (*domain.Size, error) {
	var out domain.Size
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/size", access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSize(ctx context.Context, sizeID int64, in SizeInput) (*domain.Size, error) {
	var out domain.Size
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/size/" + id(sizeID), access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSize(ctx context.Context, sizeID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/size/" + id(sizeID), access: authed}, nil)
}

type DefaultSizes struct {
	Message      string        `json:"message"`
	CreatedSizes []domain.Size `json:"createdSizes"`
}

func (c *Client) CreateDefaultSizes(ctx context.Context) (*DefaultSizes, error) {
	var out DefaultSizes
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/size/create-defaults", access: authed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddSizesToProduct(ctx context.Context, productID int64, sizeIDs []int64) (*domain.Product, error) {
	var out domain.Product
	body := map[string][]int64{"sizeIds": ids(sizeIDs)}
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/size/product/" + id(productID), access: authed, json: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveSizeFromProduct(ctx context.Context, productID, sizeID int64) error {
	return c.do(ctx, request{
		method: fiber.MethodDelete,
		path:   "api/size/product/" + id(productID) + "/size/" + id(sizeID),
		access: authed,
	}, nil)
}
