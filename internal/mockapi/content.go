package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"shopadmin/internal/domain"
)

// ----- news -----

func (b *Backend) withNewsRefs(n domain.News) domain.News {
	n.NewsType = nil
	if t, found := b.newsTypes.get(n.NewsTypeID); found {
		n.NewsType = &t
	}
	return n
}

func (b *Backend) listNews(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := r.URL.Query()
	rows := b.news.list(func(n domain.News) bool {
		if v := q.Get("status"); v != "" && string(n.Status) != v {
			return false
		}
		if v := queryInt(r, "newsTypeId", 0); v > 0 && n.NewsTypeID != int64(v) {
			return false
		}
		if v := queryInt(r, "tagId", 0); v > 0 && !containsKey(n.Tags, int64(v)) {
			return false
		}
		if v := queryInt(r, "authorId", 0); v > 0 && n.AuthorID != int64(v) {
			return false
		}
		if v := q.Get("published"); v != "" {
			want, _ := strconv.ParseBool(v)
			if (n.Status == domain.NewsPublished) != want {
				return false
			}
		}
		return true
	})
	page, meta := paginate(r, rows, 10)
	for i := range page {
		page[i] = b.withNewsRefs(page[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"news": page, "totalCount": meta.TotalCount, "currentPage": meta.CurrentPage, "totalPages": meta.TotalPages,
	})
}

func (b *Backend) getNews(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, found := b.news.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "news not found")
		return
	}
	writeJSON(w, http.StatusOK, b.withNewsRefs(n))
}

func (b *Backend) newsFromForm(r *http.Request, n *domain.News) string {
	n.Title = strings.TrimSpace(r.FormValue("title"))
	n.Description = r.FormValue("description")
	n.Content = r.FormValue("content")
	if s := r.FormValue("status"); s != "" {
		n.Status = domain.NewsStatus(s)
	}
	n.NewsTypeID, _ = strconv.ParseInt(r.FormValue("newsTypeId"), 10, 64)
	var links []string
	if v := r.FormValue("links"); v != "" {
		_ = json.Unmarshal([]byte(v), &links)
	}
	if links == nil {
		links = []string{}
	}
	n.Links = links
	n.Tags = []domain.Tag{}
	for _, id := range formIDs(r, "tagIds") {
		if t, found := b.tags.get(id); found {
			n.Tags = append(n.Tags, t)
		}
	}
	switch n.Status {
	case domain.NewsDraft, domain.NewsPublished, domain.NewsArchived:
	default:
		return "status must be DRAFT, PUBLISHED or ARCHIVED"
	}
	if n.Title == "" || n.Content == "" {
		return "title and content are required"
	}
	if _, found := b.newsTypes.get(n.NewsTypeID); !found {
		return "news type not found"
	}
	if n.Status == domain.NewsPublished && n.PublishedAt == nil {
		now := b.opts.Now()
		n.PublishedAt = &now
	}
	return ""
}

func (b *Backend) createNews(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.opts.Now()
	c := claimsOf(r)
	n := domain.News{Status: domain.NewsDraft, AuthorID: c.ID, Author: &domain.Author{ID: c.ID, Email: c.Email}, CreatedAt: now, UpdatedAt: now}
	if msg := b.newsFromForm(r, &n); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	n = b.news.insert(n)
	n.MediaFiles = b.uploads(r, "news", n.ID)
	b.news.put(n)
	writeJSON(w, http.StatusCreated, b.withNewsRefs(n))
}

func (b *Backend) updateNews(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n, found := b.news.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "news not found")
		return
	}
	if msg := b.newsFromForm(r, &n); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	n.MediaFiles = append(dropMedia(n.MediaFiles, formIDs(r, "deletedMediaIds")), b.uploads(r, "news", n.ID)...)
	n.UpdatedAt = b.opts.Now()
	b.news.put(n)
	writeJSON(w, http.StatusOK, b.withNewsRefs(n))
}

func (b *Backend) deleteNews(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.news.remove(pathID(r, "id")) {
		fail(w, http.StatusNotFound, "news not found")
		return
	}
	ok(w, "news deleted")
}

func (b *Backend) deleteNewsMedia(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, found := b.news.get(pathID(r, "id"))
	mediaID := pathID(r, "mediaId")
	if !found || !hasMedia(n.MediaFiles, mediaID) {
		fail(w, http.StatusNotFound, "media file not found")
		return
	}
	n.MediaFiles = domain.WithoutMedia(n.MediaFiles, mediaID)
	b.news.put(n)
	ok(w, "media file deleted")
}

// ----- news types -----

type newsTypeBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (b *Backend) newsCountByType(id int64) int {
	n := 0
	for _, x := range b.news.rows {
		if x.NewsTypeID == id {
			n++
		}
	}
	return n
}

func (b *Backend) listNewsTypes(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	search := r.URL.Query().Get("search")
	rows := b.newsTypes.list(func(t domain.NewsType) bool { return containsFold(t.Name, search) })
	page, meta := paginate(r, rows, 10)
	writeJSON(w, http.StatusOK, map[string]any{
		"newsTypes": page, "totalCount": meta.TotalCount, "currentPage": meta.CurrentPage, "totalPages": meta.TotalPages,
	})
}

func (b *Backend) newsTypeCounts(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := b.newsTypes.list(nil)
	for i := range rows {
		rows[i].NewsCount = b.newsCountByType(rows[i].ID)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (b *Backend) getNewsType(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, found := b.newsTypes.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "news type not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) newsTypeNameTaken(name string, except int64) bool {
	for _, t := range b.newsTypes.rows {
		if t.ID != except && strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func (b *Backend) createNewsType(w http.ResponseWriter, r *http.Request) {
	var in newsTypeBody
	if !decode(r, &in) || strings.TrimSpace(in.Name) == "" {
		fail(w, http.StatusBadRequest, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.newsTypeNameTaken(in.Name, 0) {
		fail(w, http.StatusBadRequest, "news type already exists")
		return
	}
	now := b.opts.Now()
	writeJSON(w, http.StatusCreated, b.newsTypes.insert(domain.NewsType{Name: strings.TrimSpace(in.Name), Description: in.Description, CreatedAt: now, UpdatedAt: now}))
}

func (b *Backend) updateNewsType(w http.ResponseWriter, r *http.Request) {
	var in newsTypeBody
	if !decode(r, &in) {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	t, found := b.newsTypes.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "news type not found")
		return
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		if b.newsTypeNameTaken(name, t.ID) {
			fail(w, http.StatusBadRequest, "news type already exists")
			return
		}
		t.Name = name
	}
	t.Description = in.Description
	t.UpdatedAt = b.opts.Now()
	b.newsTypes.put(t)
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) deleteNewsType(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r, "id")
	if _, found := b.newsTypes.get(id); !found {
		fail(w, http.StatusNotFound, "news type not found")
		return
	}
	if b.newsCountByType(id) > 0 {
		fail(w, http.StatusConflict, "news type is used by news and cannot be deleted")
		return
	}
	b.newsTypes.remove(id)
	ok(w, "news type deleted")
}

// ----- tags -----

type tagBody struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (b *Backend) tagNameTaken(name string, except int64) bool {
	for _, t := range b.tags.rows {
		if t.ID != except && strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func (b *Backend) listTags(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	search := r.URL.Query().Get("search")
	rows := b.tags.list(func(t domain.Tag) bool { return containsFold(t.Name, search) })
	page, meta := paginate(r, rows, 10)
	writeJSON(w, http.StatusOK, map[string]any{
		"tags": page, "totalCount": meta.TotalCount, "currentPage": meta.CurrentPage, "totalPages": meta.TotalPages,
	})
}

func (b *Backend) tagCounts(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := b.tags.list(nil)
	for i := range rows {
		for _, n := range b.news.rows {
			if containsKey(n.Tags, rows[i].ID) {
				rows[i].NewsCount++
			}
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (b *Backend) getTag(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, found := b.tags.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) createTag(w http.ResponseWriter, r *http.Request) {
	var in tagBody
	if !decode(r, &in) || strings.TrimSpace(in.Name) == "" {
		fail(w, http.StatusBadRequest, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tagNameTaken(in.Name, 0) {
		fail(w, http.StatusBadRequest, "tag already exists")
		return
	}
	now := b.opts.Now()
	writeJSON(w, http.StatusCreated, b.tags.insert(domain.Tag{Name: strings.TrimSpace(in.Name), Color: in.Color, CreatedAt: now, UpdatedAt: now}))
}

func (b *Backend) updateTag(w http.ResponseWriter, r *http.Request) {
	var in tagBody
	if !decode(r, &in) {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	t, found := b.tags.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "tag not found")
		return
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		if b.tagNameTaken(name, t.ID) {
			fail(w, http.StatusBadRequest, "tag already exists")
			return
		}
		t.Name = name
	}
	if in.Color != "" {
		t.Color = in.Color
	}
	t.UpdatedAt = b.opts.Now()
	b.tags.put(t)
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) deleteTag(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r, "id")
	if !b.tags.remove(id) {
		fail(w, http.StatusNotFound, "tag not found")
		return
	}
	for _, n := range b.news.rows {
		if containsKey(n.Tags, id) {
			n.Tags = withoutKey(n.Tags, id)
			b.news.put(n)
		}
	}
	ok(w, "tag deleted")
}

// ----- main banners -----

// activate leaves at most one active banner. Callers hold b.mu.
func (b *Backend) activate(id int64) {
	for _, m := range b.banners.rows {
		if m.ID != id && m.IsActive {
			m.IsActive = false
			b.banners.put(m)
		}
	}
}

func (b *Backend) listBanners(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	page, meta := paginate(r, b.banners.list(nil), 20)
	writeJSON(w, http.StatusOK, map[string]any{
		"mainBanners": page, "totalCount": meta.TotalCount, "currentPage": meta.CurrentPage, "totalPages": meta.TotalPages,
	})
}

func (b *Backend) activeBanner(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range b.banners.list(nil) {
		if m.IsActive {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	fail(w, http.StatusNotFound, "no active banner")
}

func (b *Backend) getBanner(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, found := b.banners.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "banner not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (b *Backend) createBanner(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.opts.Now()
	active, _ := strconv.ParseBool(r.FormValue("isActive"))
	m := b.banners.insert(domain.MainBanner{Title: r.FormValue("title"), IsActive: active, CreatedAt: now, UpdatedAt: now})
	m.MediaFiles = b.uploads(r, "main_banner", m.ID)
	if len(m.MediaFiles) == 0 {
		b.banners.remove(m.ID)
		fail(w, http.StatusBadRequest, "at least one media file is required")
		return
	}
	b.banners.put(m)
	if m.IsActive {
		b.activate(m.ID)
	}
	writeJSON(w, http.StatusCreated, m)
}

func (b *Backend) updateBanner(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	m, found := b.banners.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "banner not found")
		return
	}
	m.Title = r.FormValue("title")
	if v := r.FormValue("isActive"); v != "" {
		m.IsActive, _ = strconv.ParseBool(v)
	}
	m.MediaFiles = append(dropMedia(m.MediaFiles, formIDs(r, "deletedMediaIds")), b.uploads(r, "main_banner", m.ID)...)
	m.UpdatedAt = b.opts.Now()
	b.banners.put(m)
	if m.IsActive {
		b.activate(m.ID)
	}
	writeJSON(w, http.StatusOK, m)
}

func (b *Backend) deleteBanner(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.banners.remove(pathID(r, "id")) {
		fail(w, http.StatusNotFound, "banner not found")
		return
	}
	ok(w, "banner deleted")
}

func (b *Backend) deleteBannerMedia(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, found := b.banners.get(pathID(r, "id"))
	mediaID := pathID(r, "mediaId")
	if !found || !hasMedia(m.MediaFiles, mediaID) {
		fail(w, http.StatusNotFound, "media file not found")
		return
	}
	m.MediaFiles = domain.WithoutMedia(m.MediaFiles, mediaID)
	b.banners.put(m)
	ok(w, "media file deleted")
}
