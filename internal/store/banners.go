package store

import (
	"context"
	"net/http"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

// MainBanners also tracks the storefront's active banner and keeps it in
// step with edits made through this store.
type MainBanners struct {
	*Repo[domain.MainBanner]
	client *api.Client
	active *domain.MainBanner
}

func NewMainBanners(c *api.Client) *MainBanners {
	return &MainBanners{Repo: NewRepo[domain.MainBanner]("main-banners"), client: c}
}

func (s *MainBanners) Fetch(ctx context.Context, page, limit int) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.MainBanner, domain.Page, error) {
		res, err := s.client.ListMainBanners(ctx, page, limit)
		if err != nil {
			return nil, domain.Page{}, err
		}
		return res.MainBanners, res.Page, nil
	})
}

// FetchActive refreshes the active banner. A 404 means none is active.
func (s *MainBanners) FetchActive(ctx context.Context) error {
	var b *domain.MainBanner
	return s.run("active", func() (err error) {
		b, err = s.client.ActiveMainBanner(ctx)
		if api.StatusOf(err) == http.StatusNotFound {
			b, err = nil, nil
		}
		return err
	}, func() Event {
		s.active = b
		if b == nil {
			return Event{Kind: Loaded}
		}
		return Event{Kind: Loaded, ID: b.ID}
	})
}

func (s *MainBanners) Active() (domain.MainBanner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.MainBanner{}, false
	}
	return *s.active, true
}

func (s *MainBanners) Load(ctx context.Context, id int64) (domain.MainBanner, error) {
	return s.Repo.Load(ctx, func(ctx context.Context) (domain.MainBanner, error) {
		return deref(s.client.GetMainBanner(ctx, id))
	})
}

// Create prepends the banner and makes it current.
func (s *MainBanners) Create(ctx context.Context, in api.MainBannerInput) (domain.MainBanner, error) {
	b, err := s.Repo.Create(ctx, func(ctx context.Context) (domain.MainBanner, error) {
		return deref(s.client.CreateMainBanner(ctx, in))
	})
	if err == nil {
		s.SetCurrent(&b)
	}
	return b, err
}

func (s *MainBanners) Update(ctx context.Context, id int64, in api.MainBannerInput) (domain.MainBanner, error) {
	var b domain.MainBanner
	err := s.run("update", func() (err error) {
		b, err = deref(s.client.UpdateMainBanner(ctx, id, in))
		return err
	}, func() Event {
		s.replace(id, b)
		if s.active != nil && s.active.ID == id {
			cur := b
			s.active = &cur
		}
		return Event{Kind: Updated, ID: id}
	})
	return b, err
}

func (s *MainBanners) Delete(ctx context.Context, id int64) error {
	return s.run("delete", func() error {
		return s.client.DeleteMainBanner(ctx, id)
	}, func() Event {
		s.remove(id)
		if s.active != nil && s.active.ID == id {
			s.active = nil
		}
		return Event{Kind: Deleted, ID: id}
	})
}

func (s *MainBanners) DeleteMedia(ctx context.Context, bannerID, mediaID int64) error {
	return s.Repo.DeleteMedia(ctx, bannerID, mediaID, func(ctx context.Context) error {
		if err := s.client.DeleteMainBannerMedia(ctx, bannerID, mediaID); err != nil {
			return err
		}
		s.mutate(func() {
			if s.active != nil && s.active.ID == bannerID {
				cur := *s.active
				cur.MediaFiles = domain.WithoutMedia(cur.MediaFiles, mediaID)
				s.active = &cur
			}
		})
		return nil
	}, func(b domain.MainBanner, id int64) domain.MainBanner {
		b.MediaFiles = domain.WithoutMedia(b.MediaFiles, id)
		return b
	})
}
