package mockapi

import (
	"time"

	"shopadmin/internal/domain"
)

// The Put helpers insert records directly, keeping a non-zero ID as given.

func (b *Backend) PutClothingType(t domain.ClothingType) domain.ClothingType {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stamp(&t.CreatedAt, &t.UpdatedAt)
	return b.clothingTypes.insert(t)
}

func (b *Backend) PutColor(c domain.Color) domain.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stamp(&c.CreatedAt, &c.UpdatedAt)
	return b.colors.insert(c)
}

func (b *Backend) PutSize(s domain.Size) domain.Size {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stamp(&s.CreatedAt, &s.UpdatedAt)
	return b.sizes.insert(s)
}

func (b *Backend) PutCollection(c domain.Collection) domain.Collection {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stamp(&c.CreatedAt, &c.UpdatedAt)
	return b.collections.insert(c)
}

func (b *Backend) PutProduct(p domain.Product) domain.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.Status == "" {
		p.Status = domain.ProductAvailable
	}
	b.stamp(&p.CreatedAt, &p.UpdatedAt)
	return b.products.insert(p)
}

func (b *Backend) PutNewsType(t domain.NewsType) domain.NewsType {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stamp(&t.CreatedAt, &t.UpdatedAt)
	return b.newsTypes.insert(t)
}

func (b *Backend) PutTag(t domain.Tag) domain.Tag {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stamp(&t.CreatedAt, &t.UpdatedAt)
	return b.tags.insert(t)
}

func (b *Backend) PutNews(n domain.News) domain.News {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n.Status == "" {
		n.Status = domain.NewsDraft
	}
	if n.Links == nil {
		n.Links = []string{}
	}
	b.stamp(&n.CreatedAt, &n.UpdatedAt)
	return b.news.insert(n)
}

func (b *Backend) PutMainBanner(m domain.MainBanner) domain.MainBanner {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m.MediaFiles == nil {
		m.MediaFiles = []domain.MediaFile{}
	}
	b.stamp(&m.CreatedAt, &m.UpdatedAt)
	return b.banners.insert(m)
}

func (b *Backend) PutOrder(o domain.Order) domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	if o.Status == "" {
		o.Status = domain.OrderCreated
	}
	if o.OrderItems == nil {
		o.OrderItems = []domain.OrderItem{}
	}
	b.stamp(&o.CreatedAt, &o.UpdatedAt)
	return b.orders.insert(o)
}

// Order returns the stored order, for assertions.
func (b *Backend) Order(id int64) (domain.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.orders.get(id)
}

func (b *Backend) ClothingTypeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clothingTypes.rows)
}

// stamp fills zero timestamps.
func (b *Backend) stamp(created, updated *time.Time) {
	now := b.opts.Now()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = *created
	}
}
