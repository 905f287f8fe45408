package domain

import "time"

type OrderStatus string

const (
	OrderCreated   OrderStatus = "CREATED"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{OrderCreated, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Label is the admin-facing name of the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderCreated:
		return "Created"
	case OrderPaid:
		return "Paid"
	case OrderShipped:
		return "In transit"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Tone picks the badge style used by the orders table.
func (s OrderStatus) Tone() string {
	switch s {
	case OrderPaid:
		return "primary"
	case OrderShipped:
		return "secondary"
	case OrderDelivered:
		return "success"
	case OrderCancelled:
		return "danger"
	}
	return "default"
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCard:
		return "Card"
	case PaymentBankTransfer:
		return "Bank transfer"
	}
	return string(m)
}

type OrderProduct struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	PriceKZT     float64       `json:"priceKZT"`
	PriceUSD     float64       `json:"priceUSD"`
	Status       string        `json:"status"`
	Gender       string        `json:"gender"`
	Description  string        `json:"description,omitempty"`
	Ingredients  string        `json:"ingredients,omitempty"`
	MediaFiles   []MediaFile   `json:"mediaFiles,omitempty"`
	ClothingType *ClothingType `json:"clothingType,omitempty"`
	Collection   *Collection   `json:"collection,omitempty"`
}

type OrderItem struct {
	ID              int64        `json:"id"`
	OrderID         int64        `json:"orderId"`
	ProductID       int64        `json:"productId"`
	SelectedColorID *int64       `json:"selectedColorId,omitempty"`
	SelectedSizeID  *int64       `json:"selectedSizeId,omitempty"`
	Quantity        int          `json:"quantity"`
	PriceKZT        float64      `json:"priceKZT"`
	PriceUSD        float64      `json:"priceUSD"`
	Product         OrderProduct `json:"product"`
	SelectedColor   *Color       `json:"selectedColor,omitempty"`
	SelectedSize    *Size        `json:"selectedSize,omitempty"`
}

type OrderUser struct {
	ID      int64  `json:"id"`
	Email   string `json:"email,omitempty"`
	IsGuest bool   `json:"isGuest,omitempty"`
}

type Order struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"userId"`
	Status           OrderStatus   `json:"status"`
	RecipientName    string        `json:"recipientName"`
	RecipientAddress string        `json:"recipientAddress"`
	RecipientPhone   string        `json:"recipientPhone,omitempty"`
	RecipientEmail   string        `json:"recipientEmail,omitempty"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	TotalKZT         float64       `json:"totalKZT"`
	TotalUSD         float64       `json:"totalUSD"`
	Notes            string        `json:"notes,omitempty"`
	OrderItems       []OrderItem   `json:"orderItems"`
	User             *OrderUser    `json:"user,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func (o Order) Key() int64 { return o.ID }

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type PaymentCount struct {
	PaymentMethod string `json:"paymentMethod"`
	Count         int    `json:"count"`
}

type Revenue struct {
	TotalKZT float64 `json:"totalKZT"`
	TotalUSD float64 `json:"totalUSD"`
}

type OrderStats struct {
	TotalOrders     int            `json:"totalOrders"`
	OrdersByStatus  []StatusCount  `json:"ordersByStatus"`
	TotalRevenue    Revenue        `json:"totalRevenue"`
	OrdersByPayment []PaymentCount `json:"ordersByPayment"`
}

// CountFor returns the number of orders in status, zero when absent.
func (s OrderStats) CountFor(status OrderStatus) int {
	for _, c := range s.OrdersByStatus {
		if c.Status == string(status) {
			return c.Count
		}
	}
	return 0
}
