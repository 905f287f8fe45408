package store

import (
	"context"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

type Collections struct {
	*Repo[domain.Collection]
	client *api.Client

	// products is the listing behind the "manage products" modal: either a
	// collection's members or the products not yet in any collection.
	products []domain.Product
}

func NewCollections(c *api.Client) *Collections {
	return &Collections{Repo: NewRepo[domain.Collection]("collections"), client: c}
}

func (s *Collections) Fetch(ctx context.Context, page, limit int) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.Collection, domain.Page, error) {
		res, err := s.client.ListCollections(ctx, page, limit)
		if err != nil {
			return nil, domain.Page{}, err
		}
		return res.Collections, res.Page, nil
	})
}

func (s *Collections) Load(ctx context.Context, id int64) (domain.Collection, error) {
	return s.Repo.Load(ctx, func(ctx context.Context) (domain.Collection, error) {
		return deref(s.client.GetCollection(ctx, id))
	})
}

func (s *Collections) Create(ctx context.Context, in api.CollectionInput) (domain.Collection, error) {
	return s.Repo.Create(ctx, func(ctx context.Context) (domain.Collection, error) {
		return deref(s.client.CreateCollection(ctx, in))
	})
}

func (s *Collections) Update(ctx context.Context, id int64, in api.CollectionInput) (domain.Collection, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.Collection, error) {
		return deref(s.client.UpdateCollection(ctx, id, in))
	})
}

func (s *Collections) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteCollection(ctx, id)
	})
}

func (s *Collections) DeleteMedia(ctx context.Context, collectionID, mediaID int64) error {
	return s.Repo.DeleteMedia(ctx, collectionID, mediaID, func(ctx context.Context) error {
		return s.client.DeleteCollectionMedia(ctx, collectionID, mediaID)
	}, func(c domain.Collection, id int64) domain.Collection {
		c.MediaFiles = domain.WithoutMedia(c.MediaFiles, id)
		return c
	})
}

// AddProduct links productID and reloads the collection as current.
func (s *Collections) AddProduct(ctx context.Context, collectionID, productID int64) error {
	err := s.Do(ctx, "add-product", collectionID, func(ctx context.Context) error {
		return s.client.AddProductToCollection(ctx, collectionID, productID)
	})
	if err != nil {
		return err
	}
	_, err = s.Load(ctx, collectionID)
	return err
}

func (s *Collections) RemoveProduct(ctx context.Context, collectionID, productID int64) error {
	err := s.Do(ctx, "remove-product", collectionID, func(ctx context.Context) error {
		return s.client.RemoveProductFromCollection(ctx, collectionID, productID)
	})
	if err != nil {
		return err
	}
	_, err = s.Load(ctx, collectionID)
	return err
}

func (s *Collections) FetchProducts(ctx context.Context, collectionID int64, page, limit int) error {
	return s.fetchProducts(ctx, "products", func(ctx context.Context) (*api.ProductList, error) {
		return s.client.ListCollectionProducts(ctx, collectionID, page, limit)
	})
}

// FetchAvailable lists products that belong to no collection.
func (s *Collections) FetchAvailable(ctx context.Context, page, limit int) error {
	return s.fetchProducts(ctx, "available-products", func(ctx context.Context) (*api.ProductList, error) {
		return s.client.ListAvailableProducts(ctx, page, limit)
	})
}

func (s *Collections) fetchProducts(ctx context.Context, op string, list func(context.Context) (*api.ProductList, error)) error {
	var res *api.ProductList
	return s.run(op, func() (err error) {
		res, err = list(ctx)
		return err
	}, func() Event {
		s.products = res.Products
		return Event{Kind: Fetched}
	})
}

func (s *Collections) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *Collections) WithProducts() []domain.Collection {
	return s.Filter(func(c domain.Collection) bool { return len(c.Products) > 0 })
}

func (s *Collections) WithoutProducts() []domain.Collection {
	return s.Filter(func(c domain.Collection) bool { return len(c.Products) == 0 })
}
