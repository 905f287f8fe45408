package store

import (
	"context"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

type Orders struct {
	*Repo[domain.Order]
	client *api.Client

	stats         *domain.OrderStats
	statsInflight int
}

func NewOrders(c *api.Client) *Orders {
	return &Orders{Repo: NewRepo[domain.Order]("orders"), client: c}
}

func (s *Orders) Fetch(ctx context.Context, p api.OrderParams) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.Order, domain.Page, error) {
		res, err := s.client.ListOrders(ctx, p)
		if err != nil {
			return nil, domain.Page{}, err
		}
		return res.Orders, res.Page, nil
	})
}

func (s *Orders) Load(ctx context.Context, id int64) (domain.Order, error) {
	return s.Repo.Load(ctx, func(ctx context.Context) (domain.Order, error) {
		return deref(s.client.GetOrder(ctx, id))
	})
}

// UpdateStatus replaces the cached order with the backend's answer.
func (s *Orders) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, notes string) (domain.Order, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.Order, error) {
		res, err := s.client.UpdateOrderStatus(ctx, id, api.OrderStatusInput{Status: status, Notes: notes})
		if err != nil {
			return domain.Order{}, err
		}
		return res.Order, nil
	})
}

// LoadStats has its own loading flag so the table stays usable meanwhile.
func (s *Orders) LoadStats(ctx context.Context, startDate, endDate string) error {
	s.mutate(func() {
		s.statsInflight++
		s.err, s.serverErr = "", false
	})
	st, err := s.client.OrderStats(ctx, startDate, endDate)
	s.mutate(func() {
		s.statsInflight--
		if err != nil {
			s.err, s.serverErr = err.Error(), api.IsServerError(err)
			return
		}
		s.stats = st
	})
	if err != nil {
		s.emit(Event{Kind: Failed, Op: "stats", Err: err})
		return err
	}
	s.emit(Event{Kind: Fetched, Op: "stats"})
	return nil
}

func (s *Orders) Stats() (domain.OrderStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return domain.OrderStats{}, false
	}
	return *s.stats, true
}

func (s *Orders) StatsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsInflight > 0
}

func (s *Orders) ByStatus(status domain.OrderStatus) []domain.Order {
	return s.Filter(func(o domain.Order) bool { return o.Status == status })
}
