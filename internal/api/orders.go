package api

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/domain"
)

type OrderParams struct {
	Page          int
	Limit         int
	Status        string
	UserID        int64
	PaymentMethod string
	StartDate     string
	EndDate       string
}

func (p OrderParams) values() url.Values {
	q := pageQuery(nil, p.Page, p.Limit, "")
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.UserID > 0 {
		q.Set("userId", id(p.UserID))
	}
	if p.PaymentMethod != "" {
		q.Set("paymentMethod", p.PaymentMethod)
	}
	dateRange(q, p.StartDate, p.EndDate)
	return q
}

func dateRange(q url.Values, start, end string) {
	if start != "" {
		q.Set("startDate", start)
	}
	if end != "" {
		q.Set("endDate", end)
	}
}

type OrderList struct {
	Orders []domain.Order `json:"orders"`
	domain.Page
}

type OrderStatusInput struct {
	Status domain.OrderStatus `json:"status"`
	Notes  string             `json:"notes,omitempty"`
}

type OrderStatusResult struct {
	Message string       `json:"message"`
	Order   domain.Order `json:"order"`
}

func (c *Client) ListOrders(ctx context.Context, p OrderParams) (*OrderList, error) {
	var out OrderList
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/order", access: authed, query: p.values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/order/" + id(orderID), access: authed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, in OrderStatusInput) (*OrderStatusResult, error) {
	var out OrderStatusResult
	err := c.do(ctx, request{method: fiber.MethodPatch, path: "api/order/" + id(orderID) + "/status", access: authed, json: in}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderStats returns totals for the optional [startDate, endDate] window.
func (c *Client) OrderStats(ctx context.Context, startDate, endDate string) (*domain.OrderStats, error) {
	q := url.Values{}
	dateRange(q, startDate, endDate)
	var out domain.OrderStats
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/order/stats/overview", access: authed, query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
