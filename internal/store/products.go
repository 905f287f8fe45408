package store

import (
	"context"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

type Products struct {
	*Repo[domain.Product]
	client *api.Client
}

func NewProducts(c *api.Client) *Products {
	return &Products{Repo: NewRepo[domain.Product]("products"), client: c}
}

func (s *Products) Fetch(ctx context.Context, f api.ProductFilters) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.Product, domain.Page, error) {
		res, err := s.client.ListProducts(ctx, f)
		if err != nil {
			return nil, domain.Page{}, err
		}
		return res.Products, res.Page, nil
	})
}

func (s *Products) Load(ctx context.Context, id int64) (domain.Product, error) {
	return s.Repo.Load(ctx, func(ctx context.Context) (domain.Product, error) {
		return deref(s.client.GetProduct(ctx, id))
	})
}

func (s *Products) Create(ctx context.Context, in api.ProductInput) (domain.Product, error) {
	return s.Repo.Create(ctx, func(ctx context.Context) (domain.Product, error) {
		return deref(s.client.CreateProduct(ctx, in))
	})
}

func (s *Products) Update(ctx context.Context, id int64, in api.ProductInput) (domain.Product, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.Product, error) {
		return deref(s.client.UpdateProduct(ctx, id, in))
	})
}

func (s *Products) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteProduct(ctx, id)
	})
}

func (s *Products) DeleteMedia(ctx context.Context, productID, mediaID int64) error {
	return s.Repo.DeleteMedia(ctx, productID, mediaID, func(ctx context.Context) error {
		return s.client.DeleteProductMedia(ctx, productID, mediaID)
	}, func(p domain.Product, id int64) domain.Product {
		p.MediaFiles = domain.WithoutMedia(p.MediaFiles, id)
		return p
	})
}

func (s *Products) ByStatus(status domain.ProductStatus) []domain.Product {
	return s.Filter(func(p domain.Product) bool { return p.Status == status })
}

func (s *Products) ByGender(g domain.Gender) []domain.Product {
	return s.Filter(func(p domain.Product) bool { return p.Gender == g })
}

func (s *Products) ByClothingType(typeID int64) []domain.Product {
	return s.Filter(func(p domain.Product) bool { return p.ClothingTypeID != nil && *p.ClothingTypeID == typeID })
}

// deref adapts the api's pointer results to the value-typed Repo callbacks.
func deref[T any](v *T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return *v, nil
}

func first[T any](rows []T) (T, bool) {
	if len(rows) == 0 {
		var zero T
		return zero, false
	}
	return rows[0], true
}
