package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
	"shopadmin/internal/services"
	"shopadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const (
	newsPath      = "/admin/news"
	newsTypesPath = "/admin/news-types"
	tagsPath      = "/admin/tags"
)

// ----- news -----

type NewsHandler struct{ base }

func newsFilters(c *fiber.Ctx) api.NewsFilters {
	f := api.NewsFilters{Page: validate.Page(c.Query("page")), Limit: 10}
	if s, ok := validate.NewsStatus(c.Query("status")); ok {
		f.Status = string(s)
	}
	if id, ok := validate.ID(c.Query("newsTypeId")); ok {
		f.NewsTypeID = id
	}
	if id, ok := validate.ID(c.Query("tagId")); ok {
		f.TagID = id
	}
	return f
}

func newsLookups(ctx context.Context, a *services.Admin) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Stores.NewsTypes.Fetch(ctx, 1, 100, "") })
	g.Go(func() error { return a.Stores.Tags.Fetch(ctx, 1, 100, "") })
	return g.Wait()
}

func (h *NewsHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	a := adminOf(c)
	s := a.Stores.News
	data := fiber.Map{
		"Title": "News", "Nav": "news",
		"State": s.Snapshot(), "Filter": newsFilters(c),
		"Modal": m, "Form": form, "Alert": alert,
		"Statuses":  []domain.NewsStatus{domain.NewsDraft, domain.NewsPublished, domain.NewsArchived},
		"NewsTypes": a.Stores.NewsTypes.Items(),
		"Tags":      a.Stores.Tags.Items(),
	}
	if m.ID != 0 {
		if v, ok := s.Find(m.ID); ok {
			data["Target"] = v
		}
		if v, ok := s.Current(); ok && v.ID == m.ID {
			data["Target"] = v
		}
	}
	return renderStatus(c, status, "news", data)
}

// GET /admin/news
func (h *NewsHandler) List(c *fiber.Ctx) error {
	a := adminOf(c)
	ctx := c.UserContext()
	m := modalOf(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{}, nil, alert) }

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Stores.News.Fetch(gctx, newsFilters(c)) })
	g.Go(func() error { return newsLookups(gctx, a) })
	if err := g.Wait(); err != nil {
		return h.failed(c, "admin.news.list", err, nil, again)
	}
	var form map[string]string
	if m.Is("view") || m.Is("edit") {
		v, err := a.Stores.News.Load(ctx, m.ID)
		if err != nil {
			return h.failed(c, "admin.news.load", err, map[string]any{"news_id": m.ID}, again)
		}
		form = newsForm(v)
	}
	return h.page(c, fiber.StatusOK, m, form, "")
}

func newsForm(n domain.News) map[string]string {
	f := map[string]string{
		"title":       n.Title,
		"description": n.Description,
		"content":     n.Content,
		"status":      string(n.Status),
		"newsTypeId":  strconv.FormatInt(n.NewsTypeID, 10),
		"links":       strings.Join(n.Links, "\n"),
	}
	for _, t := range n.Tags {
		f[fmt.Sprintf("tag:%d", t.ID)] = "on"
	}
	return f
}

func submittedNews(c *fiber.Ctx) map[string]string {
	f := formValues(c)
	for _, v := range formList(c, "tagIds") {
		f["tag:"+v] = "on"
	}
	return f
}

// links splits the one-per-line textarea, dropping blanks.
func links(raw string) []string {
	out := []string{}
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func newsInput(c *fiber.Ctx) (api.NewsInput, string) {
	var in api.NewsInput
	var ok bool
	if in.Title, ok = validate.Text(c.FormValue("title"), 200); !ok || in.Title == "" {
		return in, "Title is required (up to 200 characters)."
	}
	if in.Content, ok = validate.Text(c.FormValue("content"), 20000); !ok || in.Content == "" {
		return in, "Content is required."
	}
	if in.Description, ok = validate.Text(c.FormValue("description"), 500); !ok {
		return in, "Description is too long."
	}
	if in.NewsTypeID, ok = validate.ID(c.FormValue("newsTypeId")); !ok {
		return in, "Choose a news type."
	}
	if raw := c.FormValue("status"); raw != "" {
		if in.Status, ok = validate.NewsStatus(raw); !ok {
			return in, "Unknown status."
		}
	}
	if in.TagIDs, ok = validate.IDs(formList(c, "tagIds")); !ok {
		return in, "Unknown tag."
	}
	if in.DeletedMediaIDs, ok = validate.IDs(formList(c, "deletedMediaIds")); !ok {
		return in, "Unknown media file."
	}
	in.Links = links(c.FormValue("links"))
	return in, ""
}

// POST /admin/news
func (h *NewsHandler) Create(c *fiber.Ctx) error {
	a := adminOf(c)
	ctx := c.UserContext()
	form := submittedNews(c)
	again := func(status int, alert string) error {
		_ = newsLookups(ctx, a)
		return h.page(c, status, modal{Kind: "create"}, form, alert)
	}
	in, msg := newsInput(c)
	if msg != "" {
		return h.invalid(c, "admin.news.create", msg, again)
	}
	files, err := h.media(c)
	if err != nil {
		return h.invalid(c, "admin.news.create", err.Error(), again)
	}
	in.Media = files
	v, err := a.Stores.News.Create(ctx, in)
	if err != nil {
		return h.failed(c, "admin.news.create", err, map[string]any{"title": in.Title}, again)
	}
	return h.done(c, "admin.news.create", map[string]any{"news_id": v.ID, "media": len(files)}, newsPath)
}

// POST /admin/news/:id
func (h *NewsHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	a := adminOf(c)
	ctx := c.UserContext()
	form := submittedNews(c)
	again := func(status int, alert string) error {
		_ = newsLookups(ctx, a)
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	in, msg := newsInput(c)
	if msg != "" {
		return h.invalid(c, "admin.news.update", msg, again)
	}
	files, err := h.media(c)
	if err != nil {
		return h.invalid(c, "admin.news.update", err.Error(), again)
	}
	in.Media = files
	if _, err := a.Stores.News.Update(ctx, id, in); err != nil {
		return h.failed(c, "admin.news.update", err, map[string]any{"news_id": id}, again)
	}
	return h.done(c, "admin.news.update", map[string]any{"news_id": id, "media": len(files)}, newsPath)
}

// POST /admin/news/:id/delete
func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.News.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.news.delete", err, map[string]any{"news_id": id}, again)
	}
	return h.done(c, "admin.news.delete", map[string]any{"news_id": id}, newsPath)
}

// POST /admin/news/:id/media/:mediaId/delete
func (h *NewsHandler) DeleteMedia(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	mediaID, okM := paramID(c, "mediaId")
	if !ok || !okM {
		return fiber.ErrNotFound
	}
	fields := map[string]any{"news_id": id, "media_id": mediaID}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.News.DeleteMedia(c.UserContext(), id, mediaID); err != nil {
		return h.failed(c, "admin.news.media.delete", err, fields, again)
	}
	return h.done(c, "admin.news.media.delete", fields, fmt.Sprintf("%s?modal=edit&id=%d", newsPath, id))
}

// ----- news types -----

type NewsTypesHandler struct{ base }

func (h *NewsTypesHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	s := adminOf(c).Stores.NewsTypes
	data := fiber.Map{"State": s.Snapshot(), "Counts": s.WithCounts(), "Search": c.Query("search")}
	if v, ok := s.Find(m.ID); ok {
		data["Target"] = v
		if form == nil {
			form = map[string]string{"name": v.Name, "description": v.Description}
		}
	}
	return lookupPage(c, status, "news_types", "News types", data, m, form, alert)
}

// GET /admin/news-types
func (h *NewsTypesHandler) List(c *fiber.Ctx) error {
	s := adminOf(c).Stores.NewsTypes
	search, _ := validate.Q(c.Query("search"))
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error { return s.Fetch(ctx, validate.Page(c.Query("page")), 20, search) })
	g.Go(func() error { return s.FetchWithCounts(ctx) })
	if err := g.Wait(); err != nil {
		return h.failed(c, "admin.news_types.list", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.page(c, fiber.StatusOK, modalOf(c), nil, "")
}

func newsTypeInput(c *fiber.Ctx) (api.NewsTypeInput, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return api.NewsTypeInput{}, "Name is required (up to 100 characters)."
	}
	desc, ok := validate.Text(c.FormValue("description"), 500)
	if !ok {
		return api.NewsTypeInput{}, "Description is too long."
	}
	return api.NewsTypeInput{Name: name, Description: desc}, ""
}

// POST /admin/news-types
func (h *NewsTypesHandler) Create(c *fiber.Ctx) error {
	form := formValues(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{Kind: "create"}, form, alert) }
	in, msg := newsTypeInput(c)
	if msg != "" {
		return h.invalid(c, "admin.news_types.create", msg, again)
	}
	v, err := adminOf(c).Stores.NewsTypes.Create(c.UserContext(), in)
	if err != nil {
		return h.failed(c, "admin.news_types.create", err, map[string]any{"name": in.Name}, again)
	}
	return h.done(c, "admin.news_types.create", map[string]any{"news_type_id": v.ID}, newsTypesPath)
}

// POST /admin/news-types/:id
func (h *NewsTypesHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	in, msg := newsTypeInput(c)
	if msg != "" {
		return h.invalid(c, "admin.news_types.update", msg, again)
	}
	if _, err := adminOf(c).Stores.NewsTypes.Update(c.UserContext(), id, in); err != nil {
		return h.failed(c, "admin.news_types.update", err, map[string]any{"news_type_id": id}, again)
	}
	return h.done(c, "admin.news_types.update", map[string]any{"news_type_id": id}, newsTypesPath)
}

// POST /admin/news-types/:id/delete
func (h *NewsTypesHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.NewsTypes.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.news_types.delete", err, map[string]any{"news_type_id": id}, again)
	}
	return h.done(c, "admin.news_types.delete", map[string]any{"news_type_id": id}, newsTypesPath)
}

// ----- tags -----

type TagsHandler struct{ base }

func (h *TagsHandler) page(c *fiber.Ctx, status int, m modal, form map[string]string, alert string) error {
	s := adminOf(c).Stores.Tags
	data := fiber.Map{"State": s.Snapshot(), "Counts": s.WithCounts(), "Search": c.Query("search")}
	if v, ok := s.Find(m.ID); ok {
		data["Target"] = v
		if form == nil {
			form = map[string]string{"name": v.Name, "color": v.Color}
		}
	}
	return lookupPage(c, status, "tags", "Tags", data, m, form, alert)
}

// GET /admin/tags
func (h *TagsHandler) List(c *fiber.Ctx) error {
	s := adminOf(c).Stores.Tags
	search, _ := validate.Q(c.Query("search"))
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error { return s.Fetch(ctx, validate.Page(c.Query("page")), 20, search) })
	g.Go(func() error { return s.FetchWithCounts(ctx) })
	if err := g.Wait(); err != nil {
		return h.failed(c, "admin.tags.list", err, nil, func(status int, alert string) error {
			return h.page(c, status, modal{}, nil, alert)
		})
	}
	return h.page(c, fiber.StatusOK, modalOf(c), nil, "")
}

func tagInput(c *fiber.Ctx) (api.TagInput, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return api.TagInput{}, "Name is required (up to 100 characters)."
	}
	in := api.TagInput{Name: name}
	if raw := c.FormValue("color"); raw != "" {
		if in.Color, ok = validate.HexColor(raw); !ok {
			return in, "Color must look like #3B82F6."
		}
	}
	return in, ""
}

// POST /admin/tags
func (h *TagsHandler) Create(c *fiber.Ctx) error {
	form := formValues(c)
	again := func(status int, alert string) error { return h.page(c, status, modal{Kind: "create"}, form, alert) }
	in, msg := tagInput(c)
	if msg != "" {
		return h.invalid(c, "admin.tags.create", msg, again)
	}
	v, err := adminOf(c).Stores.Tags.Create(c.UserContext(), in)
	if err != nil {
		return h.failed(c, "admin.tags.create", err, map[string]any{"name": in.Name}, again)
	}
	return h.done(c, "admin.tags.create", map[string]any{"tag_id": v.ID}, tagsPath)
}

// POST /admin/tags/:id
func (h *TagsHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	form := formValues(c)
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "edit", ID: id}, form, alert)
	}
	in, msg := tagInput(c)
	if msg != "" {
		return h.invalid(c, "admin.tags.update", msg, again)
	}
	if _, err := adminOf(c).Stores.Tags.Update(c.UserContext(), id, in); err != nil {
		return h.failed(c, "admin.tags.update", err, map[string]any{"tag_id": id}, again)
	}
	return h.done(c, "admin.tags.update", map[string]any{"tag_id": id}, tagsPath)
}

// POST /admin/tags/:id/delete
func (h *TagsHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fiber.ErrNotFound
	}
	again := func(status int, alert string) error {
		return h.page(c, status, modal{Kind: "delete", ID: id}, nil, alert)
	}
	if err := adminOf(c).Stores.Tags.Delete(c.UserContext(), id); err != nil {
		return h.failed(c, "admin.tags.delete", err, map[string]any{"tag_id": id}, again)
	}
	return h.done(c, "admin.tags.delete", map[string]any{"tag_id": id}, tagsPath)
}
