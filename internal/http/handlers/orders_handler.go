package handlers

import (
	"fmt"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
	"shopadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const ordersPath = "/admin/orders"

type OrdersHandler struct{ base }

func orderParams(c *fiber.Ctx) api.OrderParams {
	p := api.OrderParams{Page: validate.Page(c.Query("page")), Limit: 10}
	if s, ok := validate.OrderStatus(c.Query("status")); ok {
		p.Status = string(s)
	}
	if m, ok := validate.PaymentMethod(c.Query("paymentMethod")); ok {
		p.PaymentMethod = string(m)
	}
	if id, ok := validate.ID(c.Query("userId")); ok {
		p.UserID = id
	}
	if d, ok := validate.Date(c.Query("startDate")); ok {
		p.StartDate = d
	}
	if d, ok := validate.Date(c.Query("endDate")); ok {
		p.EndDate = d
	}
	return p
}

func (h *OrdersHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	s := adminOf(c).Stores.Orders
	data := fiber.Map{
		"Title": "Orders", "Nav": "orders",
		"State": s.Snapshot(), "Filter": orderParams(c),
		"Modal": m, "Form": form, "Alert": alert,
		"Statuses":     domain.OrderStatuses,
		"Payments":     []domain.PaymentMethod{domain.PaymentCash, domain.PaymentCard, domain.PaymentBankTransfer},
		"StatsLoading": s.StatsLoading(),
	}
	if st, ok := s.Stats(); ok {
		data["Stats"] = st
	}
	if m.ID != 0 {
		if v, ok := s.Find(m.ID); ok {
			data["Target"] = v
		}
		if v, ok := s.Current(); ok && v.ID == m.ID {
			data["Target"] = v
		}
	}
	return renderStatus(c, status, "orders", data)
}

// GET /admin/orders
//
// The table and the statistics panel are fetched side by side for the same
// date window.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	a := adminOf(c)
	s := a.Stores.Orders
	m := modalOf(c)
	p := orderParams(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{}, nil, alert) }

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error { return s.Fetch(ctx, p) })
	g.Go(func() error { return s.LoadStats(ctx, p.StartDate, p.EndDate) })
	if err := g.Wait(); err != nil {
		return h.failed(c, "admin.orders.list", err, nil, again)
	}
	var form map[string]string
	if m.Is("view") || m.Is("status") {
		o, err := s.Load(c.UserContext(), m.ID)
		if err != nil {
			return h.failed(c, "admin.orders.load", err, map[string]any{"order_id": m.ID}, again)
		}
		form = map[string]string{"status": string(o.Status), "notes": o.Notes}
	}
	return h.page(c, fiber.StatusOK, m, form, "")
}

// POST /admin/orders/:id/status
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "status", ID: id}, form, alert)
	}
	st, ok := validate.OrderStatus(c.FormValue("status"))
	if !ok {
		return h.invalid(c, "admin.orders.status", "Choose a valid status.", again)
	}
	notes, ok := validate.Text(c.FormValue("notes"), 1000)
	if !ok {
		return h.invalid(c, "admin.orders.status", "Notes are too long.", again)
	}
	o, err := adminOf(c).Stores.Orders.UpdateStatus(c.UserContext(), id, st, notes)
	if err != nil {
		return h.failed(c, "admin.orders.status", err, map[string]any{"order_id": id, "status": st}, again)
	}
	return h.done(c, "admin.orders.status", map[string]any{"order_id": id, "status": o.Status}, fmt.Sprintf("%s?modal=view&id=%d", ordersPath, id))
}
