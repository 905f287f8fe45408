package store

import "shopadmin/internal/api"

// Set is one store per entity family, owned by a single admin session.
type Set struct {
	Products      *Products
	Collections   *Collections
	Colors        *Colors
	Sizes         *Sizes
	ClothingTypes *ClothingTypes
	News          *News
	NewsTypes     *NewsTypes
	Tags          *Tags
	MainBanners   *MainBanners
	Orders        *Orders
}

func NewSet(c *api.Client) *Set {
	return &Set{
		Products:      NewProducts(c),
		Collections:   NewCollections(c),
		Colors:        NewColors(c),
		Sizes:         NewSizes(c),
		ClothingTypes: NewClothingTypes(c),
		News:          NewNews(c),
		NewsTypes:     NewNewsTypes(c),
		Tags:          NewTags(c),
		MainBanners:   NewMainBanners(c),
		Orders:        NewOrders(c),
	}
}

type subscriber interface {
	Subscribe(Listener) func()
}

func (s *Set) all() []subscriber {
	return []subscriber{
		s.Products, s.Collections, s.Colors, s.Sizes, s.ClothingTypes,
		s.News, s.NewsTypes, s.Tags, s.MainBanners, s.Orders,
	}
}

// Subscribe registers l on every store in the set.
func (s *Set) Subscribe(l Listener) func() {
	var cancels []func()
	for _, st := range s.all() {
		cancels = append(cancels, st.Subscribe(l))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}
