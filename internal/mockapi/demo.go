package mockapi

import (
	"log"

	"shopadmin/internal/domain"
)

// Seed loads a small demo catalog, idempotent only on an empty backend.
func (b *Backend) Seed() {
	if b.ClothingTypeCount() > 0 {
		return
	}
	log.Println("[seed] inserting demo catalog/news/orders")

	tee := b.PutClothingType(domain.ClothingType{Name: "T-shirts"})
	hoodie := b.PutClothingType(domain.ClothingType{Name: "Hoodies"})
	black := b.PutColor(domain.Color{Name: "Black", HexCode: "#000000"})
	white := b.PutColor(domain.Color{Name: "White", HexCode: "#FFFFFF"})
	s := b.PutSize(domain.Size{Name: "S"})
	m := b.PutSize(domain.Size{Name: "M"})
	l := b.PutSize(domain.Size{Name: "L"})
	fw := b.PutCollection(domain.Collection{Name: "Fall/Winter", Description: "Cold season essentials"})

	basic := b.PutProduct(domain.Product{
		Name: "Basic tee", Gender: domain.GenderMan, PriceKZT: 9900, PriceUSD: 20,
		ClothingTypeID: &tee.ID, Sizes: []domain.Size{s, m, l}, Colors: []domain.Color{black, white},
	})
	b.PutProduct(domain.Product{
		Name: "Oversized hoodie", Gender: domain.GenderWoman, PriceKZT: 24900, PriceUSD: 50,
		ClothingTypeID: &hoodie.ID, CollectionID: &fw.ID, Sizes: []domain.Size{m, l}, Colors: []domain.Color{black},
	})

	drops := b.PutNewsType(domain.NewsType{Name: "Drops", Description: "New arrivals"})
	tag := b.PutTag(domain.Tag{Name: "sale", Color: "#FF5A5F"})
	b.PutNews(domain.News{
		Title: "Fall/Winter is here", Content: "The new collection is live.", Status: domain.NewsPublished,
		NewsTypeID: drops.ID, AuthorID: adminID, Tags: []domain.Tag{tag},
	})

	b.PutOrder(domain.Order{
		UserID: 7, RecipientName: "Aigerim", RecipientAddress: "Abay ave 1, Almaty",
		PaymentMethod: domain.PaymentCard, TotalKZT: 19800, TotalUSD: 40, Status: domain.OrderPaid,
		OrderItems: []domain.OrderItem{{
			ID: 1, ProductID: basic.ID, Quantity: 2, PriceKZT: 9900, PriceUSD: 20,
			Product: domain.OrderProduct{ID: basic.ID, Name: basic.Name, PriceKZT: 9900, PriceUSD: 20, Status: string(domain.ProductAvailable), Gender: string(basic.Gender)},
		}},
	})
}
