package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/domain"
)

type NewsFilters struct {
	Status     string
	NewsTypeID int64
	TagID      int64
	AuthorID   int64
	Published  *bool
	Page       int
	Limit      int
}

func (f NewsFilters) values() url.Values {
	q := pageQuery(nil, f.Page, f.Limit, "")
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.NewsTypeID > 0 {
		q.Set("newsTypeId", id(f.NewsTypeID))
	}
	if f.TagID > 0 {
		q.Set("tagId", id(f.TagID))
	}
	if f.AuthorID > 0 {
		q.Set("authorId", id(f.AuthorID))
	}
	if f.Published != nil {
		q.Set("published", strconv.FormatBool(*f.Published))
	}
	return q
}

type NewsList struct {
	News []domain.News `json:"news"`
	domain.Page
}

type NewsInput struct {
	Title           string
	Description     string
	Content         string
	Status          domain.NewsStatus
	NewsTypeID      int64
	TagIDs          []int64
	Links           []string
	DeletedMediaIDs []int64
	Media           []File
}

func (in NewsInput) Form() (*Form, error) {
	f := NewForm().
		Set("title", in.Title).
		Set("description", in.Description).
		Set("content", in.Content).
		Set("newsTypeId", id(in.NewsTypeID))
	if in.Status != "" {
		f.Set("status", string(in.Status))
	}
	if err := f.SetJSON("tagIds", ids(in.TagIDs)); err != nil {
		return nil, err
	}
	links := in.Links
	if links == nil {
		links = []string{}
	}
	if err := f.SetJSON("links", links); err != nil {
		return nil, err
	}
	if len(in.DeletedMediaIDs) > 0 {
		if err := f.SetJSON("deletedMediaIds", in.DeletedMediaIDs); err != nil {
			return nil, err
		}
	}
	f.Attach(in.Media...)
	return f, nil
}

func (c *Client) ListNews(ctx context.Context, f NewsFilters) (*NewsList, error) {
	var out NewsList
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/news", query: f.values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetNews(ctx context.Context, newsID int64) (*domain.News, error) {
	var out domain.News
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/news/" + id(newsID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateNews(ctx context.Context, in NewsInput) (*domain.News, error) {
	form, err := in.Form()
	if err != nil {
		return nil, err
	}
	var out domain.News
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/news", access: authed, form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNews(ctx context.Context, newsID int64, in NewsInput) (*domain.News, error) {
	form, err := in.Form()
	if err != nil {
		return nil, err
	}
	var out domain.News
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/news/" + id(newsID), access: authed, form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNews(ctx context.Context, newsID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/news/" + id(newsID), access: authed}, nil)
}

func (c *Client) DeleteNewsMedia(ctx context.Context, newsID, mediaID int64) error {
	return c.do(ctx, request{
		method: fiber.MethodDelete,
		path:   "api/news/" + id(newsID) + "/media/" + id(mediaID),
		access: authed,
	}, nil)
}

// ----- news types -----

type NewsTypeList struct {
	NewsTypes []domain.NewsType `json:"newsTypes"`
	domain.Page
}

type NewsTypeInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c *Client) ListNewsTypes(ctx context.Context, page, limit int, search string) (*NewsTypeList, error) {
	var out NewsTypeList
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/news-type", query: pageQuery(nil, page, limit, search)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) NewsTypesWithCounts(ctx context.Context) ([]domain.NewsType, error) {
	var out []domain.NewsType
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/news-type/counts"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNewsType(ctx context.Context, typeID int64) (*domain.NewsType, error) {
	var out domain.NewsType
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/news-type/" + id(typeID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateNewsType(ctx context.Context, in NewsTypeInput) (*domain.NewsType, error) {
	var out domain.NewsType
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/news-type", access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNewsType(ctx context.Context, typeID int64, in NewsTypeInput) (*domain.NewsType, error) {
	var out domain.NewsType
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/news-type/" + id(typeID), access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNewsType(ctx context.Context, typeID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/news-type/" + id(typeID), access: authed}, nil)
}

// ----- tags -----

type TagList struct {
	Tags []domain.Tag `json:"tags"`
	domain.Page
}

type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func (c *Client) ListTags(ctx context.Context, page, limit int, search string) (*TagList, error) {
	var out TagList
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/tag", query: pageQuery(nil, page, limit, search)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TagsWithCounts(ctx context.Context) ([]domain.Tag, error) {
	var out []domain.Tag
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/tag/counts"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTag(ctx context.Context, tagID int64) (*domain.Tag, error) {
	var out domain.Tag
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "api/tag/" + id(tagID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTag(ctx context.Context, in TagInput) (*domain.Tag, error) {
	var out domain.Tag
	if err := c.do(ctx, request{method: fiber.MethodPost, path: "api/tag", access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTag(ctx context.Context, tagID int64, in TagInput) (*domain.Tag, error) {
	var out domain.Tag
	if err := c.do(ctx, request{method: fiber.MethodPut, path: "api/tag/" + id(tagID), access: authed, json: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTag(ctx context.Context, tagID int64) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "api/tag/" + id(tagID), access: authed}, nil)
}
