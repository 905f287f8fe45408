package store

import (
	"context"
	"strings"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

type News struct {
	*Repo[domain.News]
	client *api.Client
}

func NewNews(c *api.Client) *News {
	return &News{Repo: NewRepo[domain.News]("news"), client: c}
}

func (s *News) Fetch(ctx context.Context, f api.NewsFilters) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.News, domain.Page, error) {
		res, err := s.client.ListNews(ctx, f)
		if err != nil {
			return nil, domain.Page{}, err
		}
		return res.News, res.Page, nil
	})
}

func (s *News) Load(ctx context.Context, id int64) (domain.News, error) {
	return s.Repo.Load(ctx, func(ctx context.Context) (domain.News, error) {
		return deref(s.client.GetNews(ctx, id))
	})
}

func (s *News) Create(ctx context.Context, in api.NewsInput) (domain.News, error) {
	return s.Repo.Create(ctx, func(ctx context.Context) (domain.News, error) {
		return deref(s.client.CreateNews(ctx, in))
	})
}

func (s *News) Update(ctx context.Context, id int64, in api.NewsInput) (domain.News, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.News, error) {
		return deref(s.client.UpdateNews(ctx, id, in))
	})
}

func (s *News) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteNews(ctx, id)
	})
}

func (s *News) DeleteMedia(ctx context.Context, newsID, mediaID int64) error {
	return s.Repo.DeleteMedia(ctx, newsID, mediaID, func(ctx context.Context) error {
		return s.client.DeleteNewsMedia(ctx, newsID, mediaID)
	}, func(n domain.News, id int64) domain.News {
		n.MediaFiles = domain.WithoutMedia(n.MediaFiles, id)
		return n
	})
}

func (s *News) ByStatus(status domain.NewsStatus) []domain.News {
	return s.Filter(func(n domain.News) bool { return n.Status == status })
}

// ----- news types -----

type NewsTypes struct {
	*Repo[domain.NewsType]
	client *api.Client
	counts []domain.NewsType
}

func NewNewsTypes(c *api.Client) *NewsTypes {
	return &NewsTypes{Repo: NewRepo[domain.NewsType]("news-types"), client: c}
}

func (s *NewsTypes) Fetch(ctx context.Context, page, limit int, search string) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.NewsType, domain.Page, error) {
		res, err := s.client.ListNewsTypes(ctx, page, limit, search)
		if err != nil {
			return nil, domain.Page{}, err
		}
		return res.NewsTypes, res.Page, nil
	})
}

func (s *NewsTypes) FetchWithCounts(ctx context.Context) error {
	var rows []domain.NewsType
	return s.run("counts", func() (err error) {
		rows, err = s.client.NewsTypesWithCounts(ctx)
		return err
	}, func() Event {
		s.counts = rows
		return Event{Kind: Fetched}
	})
}

func (s *NewsTypes) WithCounts() []domain.NewsType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.NewsType(nil), s.counts...)
}

func (s *NewsTypes) Load(ctx context.Context, id int64) (domain.NewsType, error) {
	return s.Repo.Load(ctx, func(ctx context.Context) (domain.NewsType, error) {
		return deref(s.client.GetNewsType(ctx, id))
	})
}

func (s *NewsTypes) Create(ctx context.Context, in api.NewsTypeInput) (domain.NewsType, error) {
	return s.Repo.Create(ctx, func(ctx context.Context) (domain.NewsType, error) {
		return deref(s.client.CreateNewsType(ctx, in))
	})
}

func (s *NewsTypes) Update(ctx context.Context, id int64, in api.NewsTypeInput) (domain.NewsType, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.NewsType, error) {
		return deref(s.client.UpdateNewsType(ctx, id, in))
	})
}

func (s *NewsTypes) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteNewsType(ctx, id)
	})
}

func (s *NewsTypes) ByName(name string) (domain.NewsType, bool) {
	return first(s.Filter(func(t domain.NewsType) bool { return strings.EqualFold(t.Name, name) }))
}

// ----- tags -----

type Tags struct {
	*Repo[domain.Tag]
	client *api.Client
	counts []domain.Tag
}

func NewTags(c *api.Client) *Tags {
	return &Tags{Repo: NewRepo[domain.Tag]("tags"), client: c}
}

func (s *Tags) Fetch(ctx context.Context, page, limit int, search string) error {
	return s.Repo.Fetch(ctx, func(ctx context.Context) ([]domain.Tag, domain.Page, error) {
		res, err := s.client.ListTags(ctx, page, limit, search)
		if err != nil {
			return nil, domain.Page{}, err
		}
		return res.Tags, res.Page, nil
	})
}

func (s *Tags) FetchWithCounts(ctx context.Context) error {
	var rows []domain.Tag
	return s.run("counts", func() (err error) {
		rows, err = s.client.TagsWithCounts(ctx)
		return err
	}, func() Event {
		s.counts = rows
		return Event{Kind: Fetched}
	})
}

func (s *Tags) WithCounts() []domain.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Tag(nil), s.counts...)
}

func (s *Tags) Load(ctx context.Context, id int64) (domain.Tag, error) {
	return s.Repo.Load(ctx, func(ctx context.Context) (domain.Tag, error) {
		return deref(s.client.GetTag(ctx, id))
	})
}

func (s *Tags) Create(ctx context.Context, in api.TagInput) (domain.Tag, error) {
	return s.Repo.Create(ctx, func(ctx context.Context) (domain.Tag, error) {
		return deref(s.client.CreateTag(ctx, in))
	})
}

func (s *Tags) Update(ctx context.Context, id int64, in api.TagInput) (domain.Tag, error) {
	return s.Repo.Update(ctx, id, func(ctx context.Context) (domain.Tag, error) {
		return deref(s.client.UpdateTag(ctx, id, in))
	})
}

func (s *Tags) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteTag(ctx, id)
	})
}

func (s *Tags) ByName(name string) (domain.Tag, bool) {
	return first(s.Filter(func(t domain.Tag) bool { return strings.EqualFold(t.Name, name) }))
}

func (s *Tags) ByColor(color string) []domain.Tag {
	return s.Filter(func(t domain.Tag) bool { return strings.EqualFold(t.Color, color) })
}
