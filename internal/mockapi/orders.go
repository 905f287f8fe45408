package mockapi

import (
	"net/http"
	"strings"
	"time"

	"shopadmin/internal/domain"
)

func inRange(t time.Time, start, end string) bool {
	if s, err := time.Parse("2006-01-02", start); err == nil && t.Before(s) {
		return false
	}
	if e, err := time.Parse("2006-01-02", end); err == nil && !t.Before(e.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (b *Backend) listOrders(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := r.URL.Query()
	rows := b.orders.list(func(o domain.Order) bool {
		if v := q.Get("status"); v != "" && string(o.Status) != v {
			return false
		}
		if v := q.Get("paymentMethod"); v != "" && string(o.PaymentMethod) != v {
			return false
		}
		if v := queryInt(r, "userId", 0); v > 0 && o.UserID != int64(v) {
			return false
		}
		return inRange(o.CreatedAt, q.Get("startDate"), q.Get("endDate"))
	})
	page, meta := paginate(r, rows, 10)
	writeJSON(w, http.StatusOK, map[string]any{
		"orders": page, "totalCount": meta.TotalCount, "currentPage": meta.CurrentPage, "totalPages": meta.TotalPages,
	})
}

func (b *Backend) getOrder(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, found := b.orders.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// updateOrderStatus changes only status, and notes when given.
func (b *Backend) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status domain.OrderStatus `json:"status"`
		Notes  string             `json:"notes"`
	}
	if !decode(r, &in) || !in.Status.Valid() {
		fail(w, http.StatusBadRequest, "invalid order status")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	o, found := b.orders.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "order not found")
		return
	}
	o.Status = in.Status
	if strings.TrimSpace(in.Notes) != "" {
		o.Notes = in.Notes
	}
	b.orders.put(o)
	writeJSON(w, http.StatusOK, map[string]any{"message": "order status updated", "order": o})
}

func (b *Backend) orderStats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := r.URL.Query()
	stats := domain.OrderStats{OrdersByStatus: []domain.StatusCount{}, OrdersByPayment: []domain.PaymentCount{}}
	byStatus := map[string]int{}
	byPayment := map[string]int{}
	var statusOrder, paymentOrder []string
	for _, o := range b.orders.rows {
		if !inRange(o.CreatedAt, q.Get("startDate"), q.Get("endDate")) {
			continue
		}
		stats.TotalOrders++
		if _, seen := byStatus[string(o.Status)]; !seen {
			statusOrder = append(statusOrder, string(o.Status))
		}
		byStatus[string(o.Status)]++
		if _, seen := byPayment[string(o.PaymentMethod)]; !seen {
			paymentOrder = append(paymentOrder, string(o.PaymentMethod))
		}
		byPayment[string(o.PaymentMethod)]++
		if o.Status != domain.OrderCancelled && o.Status != domain.OrderCreated {
			stats.TotalRevenue.TotalKZT += o.TotalKZT
			stats.TotalRevenue.TotalUSD += o.TotalUSD
		}
	}
	for _, s := range statusOrder {
		stats.OrdersByStatus = append(stats.OrdersByStatus, domain.StatusCount{Status: s, Count: byStatus[s]})
	}
	for _, p := range paymentOrder {
		stats.OrdersByPayment = append(stats.OrdersByPayment, domain.PaymentCount{PaymentMethod: p, Count: byPayment[p]})
	}
	writeJSON(w, http.StatusOK, stats)
}
