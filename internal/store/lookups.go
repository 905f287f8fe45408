package store

import (
	"context"
	"strings"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

// ----- colors -----

type Colors struct {
	*Repo[domain.Color]
	client *api.Client
}

func NewColors(c *api.Client) *Colors {
	return &Colors{Repo: NewRepo[domain.Color]("colors"), client: c}
}

func (s *Colors) Fetch(ctx context.Context) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.Color, domain.Page, error) {
		rows, err := s.client.ListColors(ctx)
		return rows, domain.SinglePage(len(rows)), err
	})
}

func (s *Colors) Create(ctx context.Context, in api.ColorInput) (domain.Color, error) {
	return s.Repo.Create(ctx, func(ctx context.Context) (domain.Color, error) {
		return deref(s.client.CreateColor(ctx, in))
	})
}

func (s *Colors) Update(ctx context.Context, id int64, in api.ColorInput) (domain.Color, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.Color, error) {
		return deref(s.client.UpdateColor(ctx, id, in))
	})
}

func (s *Colors) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteColor(ctx, id)
	})
}

// CreateDefaults seeds the backend's default palette and refetches the list.
func (s *Colors) CreateDefaults(ctx context.Context) (int, error) {
	var n int
	err := s.Do(ctx, "create-defaults", 0, func(ctx context.Context) error {
		res, err := s.client.CreateDefaultColors(ctx)
		if err != nil {
			return err
		}
		n = len(res.CreatedColors)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, s.Fetch(ctx)
}

func (s *Colors) AddToProduct(ctx context.Context, productID int64, colorIDs []int64) (domain.Product, error) {
	var p domain.Product
	err := s.Do(ctx, "add-to-product", productID, func(ctx context.Context) (err error) {
		p, err = deref(s.client.AddColorsToProduct(ctx, productID, colorIDs))
		return err
	})
	return p, err
}

func (s *Colors) RemoveFromProduct(ctx context.Context, productID, colorID int64) error {
	return s.Do(ctx, "remove-from-product", productID, func(ctx context.Context) error {
		return s.client.RemoveColorFromProduct(ctx, productID, colorID)
	})
}

func (s *Colors) ByName(name string) (domain.Color, bool) {
	return first(s.Filter(func(c domain.Color) bool { return strings.EqualFold(c.Name, name) }))
}

func (s *Colors) ByHex(hex string) (domain.Color, bool) {
	return first(s.Filter(func(c domain.Color) bool { return strings.EqualFold(c.HexCode, hex) }))
}

// ----- sizes -----

type Sizes struct {
	*Repo[domain.Size]
	client *api.Client
}

func NewSizes(c *api.Client) *Sizes {
	return &Sizes{Repo: NewRepo[domain.Size]("sizes"), client: c}
}

func (s *Sizes) Fetch(ctx context.Context) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.Size, domain.Page, error) {
		rows, err := s.client.ListSizes(ctx)
		return rows, domain.SinglePage(len(rows)), err
	})
}

func (s *Sizes) Create(ctx context.Context, in api.SizeInput) (domain.Size, error) {
	return s.Repo.Create(ctx, func(ctx context.Context) (domain.Size, error) {
		return deref(s.client.CreateSize(ctx, in))
	})
}

func (s *Sizes) Update(ctx context.Context, id int64, in api.SizeInput) (domain.Size, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.Size, error) {
		return deref(s.client.UpdateSize(ctx, id, in))
	})
}

func (s *Sizes) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteSize(ctx, id)
	})
}

func (s *Sizes) CreateDefaults(ctx context.Context) (int, error) {
	var n int
	err := s.Do(ctx, "create-defaults", 0, func(ctx context.Context) error {
		res, err := s.client.CreateDefaultSizes(ctx)
		if err != nil {
			return err
		}
		n = len(res.CreatedSizes)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, s.Fetch(ctx)
}

func (s *Sizes) AddToProduct(ctx context.Context, productID int64, sizeIDs []int64) (domain.Product, error) {
	var p domain.Product
	err := s.Do(ctx, "add-to-product", productID, func(ctx context.Context) (err error) {
		p, err = deref(s.client.AddSizesToProduct(ctx, productID, sizeIDs))
		return err
	})
	return p, err
}

func (s *Sizes) RemoveFromProduct(ctx context.Context, productID, sizeID int64) error {
	return s.Do(ctx, "remove-from-product", productID, func(ctx context.Context) error {
		return s.client.RemoveSizeFromProduct(ctx, productID, sizeID)
	})
}

// ----- clothing types -----

type ClothingTypes struct {
	*Repo[domain.ClothingType]
	client *api.Client
	stats  []domain.ClothingTypeStat
}

func NewClothingTypes(c *api.Client) *ClothingTypes {
	return &ClothingTypes{Repo: NewRepo[domain.ClothingType]("clothing-types"), client: c}
}

func (s *ClothingTypes) Fetch(ctx context.Context) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.ClothingType, domain.Page, error) {
		rows, err := s.client.ListClothingTypes(ctx)
		return rows, domain.SinglePage(len(rows)), err
	})
}

func (s *ClothingTypes) Load(ctx context.Context, id int64) (domain.ClothingType, error) {
	return s.Repo.Load(ctx, func(ctx context.Context) (domain.ClothingType, error) {
		return deref(s.client.GetClothingType(ctx, id))
	})
}

func (s *ClothingTypes) Create(ctx context.Context, in api.ClothingTypeInput) (domain.ClothingType, error) {
	return s.Repo.Create(ctx, func(ctx context.Context) (domain.ClothingType, error) {
		return deref(s.client.CreateClothingType(ctx, in))
	})
}

func (s *ClothingTypes) Update(ctx context.Context, id int64, in api.ClothingTypeInput) (domain.ClothingType, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.ClothingType, error) {
		return deref(s.client.UpdateClothingType(ctx, id, in))
	})
}

func (s *ClothingTypes) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteClothingType(ctx, id)
	})
}

func (s *ClothingTypes) CreateDefaults(ctx context.Context) (int, error) {
	var n int
	err := s.Do(ctx, "create-defaults", 0, func(ctx context.Context) error {
		res, err := s.client.CreateDefaultClothingTypes(ctx)
		if err != nil {
			return err
		}
		n = len(res.CreatedTypes)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, s.Fetch(ctx)
}

func (s *ClothingTypes) LoadStatistics(ctx context.Context) error {
	var rows []domain.ClothingTypeStat
	return s.run("statistics", func() (err error) {
		rows, err = s.client.ClothingTypeStatistics(ctx)
		return err
	}, func() Event {
		s.stats = rows
		return Event{Kind: Fetched}
	})
}

func (s *ClothingTypes) Statistics() []domain.ClothingTypeStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	out := make([]domain.ClothingTypeStat, len(s.stats))
	copy(out, s.stats)
	return out
}
