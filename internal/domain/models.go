package domain

import "time"

type Gender string

const (
	GenderMan   Gender = "MAN"
	GenderWoman Gender = "WOMAN"
)

type ProductStatus string

const (
	ProductAvailable ProductStatus = "AVAILABLE"
	ProductSold      ProductStatus = "SOLD"
	ProductDeleted   ProductStatus = "DELETED"
)

type Product struct {
	ID             int64         `json:"id"`
	Gender         Gender        `json:"gender"` // MAN | WOMAN
	Name           string        `json:"name"`
	PriceKZT       float64       `json:"priceKZT"`
	PriceUSD       float64       `json:"priceUSD"`
	Description    string        `json:"description,omitempty"`
	Color          string        `json:"color,omitempty"`
	Ingredients    string        `json:"ingredients,omitempty"`
	Status         ProductStatus `json:"status"` // AVAILABLE | SOLD | DELETED
	ClothingTypeID *int64        `json:"clothingTypeId,omitempty"`
	CollectionID   *int64        `json:"collectionId,omitempty"`
	ClothingType   *ClothingType `json:"clothingType,omitempty"`
	Collection     *Collection   `json:"collection,omitempty"`
	Sizes          []Size        `json:"sizes,omitempty"`
	Colors         []Color       `json:"colors,omitempty"`
	MediaFiles     []MediaFile   `json:"mediaFiles,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (p Product) Key() int64 { return p.ID }

type Collection struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Products    []Product   `json:"products,omitempty"`
	MediaFiles  []MediaFile `json:"mediaFiles,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (c Collection) Key() int64 { return c.ID }

type ClothingType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t ClothingType) Key() int64 { return t.ID }

// ClothingTypeStat is one row of the clothing type statistics panel.
type ClothingTypeStat struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
}

type Color struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	HexCode   string    `json:"hexCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Color) Key() int64 { return c.ID }

type Size struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Size) Key() int64 { return s.ID }

type MainBanner struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title,omitempty"`
	IsActive   bool        `json:"isActive"`
	MediaFiles []MediaFile `json:"mediaFiles"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (b MainBanner) Key() int64 { return b.ID }
