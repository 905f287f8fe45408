// Package mockapi is an in-memory stand-in for the shop backend REST API.
// It serves the same endpoint families the dashboard consumes and is meant
// for local development and tests.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"shopadmin/internal/domain"
)

type Options struct {
	Secret        string
	AdminEmail    string
	AdminPassword string
	TokenTTL      time.Duration
	Now           func() time.Time
}

// Backend holds all records behind one lock.
type Backend struct {
	mu   sync.Mutex
	opts Options

	products      *table[domain.Product]
	collections   *table[domain.Collection]
	clothingTypes *table[domain.ClothingType]
	colors        *table[domain.Color]
	sizes         *table[domain.Size]
	news          *table[domain.News]
	newsTypes     *table[domain.NewsType]
	tags          *table[domain.Tag]
	banners       *table[domain.MainBanner]
	orders        *table[domain.Order]
	nextMediaID   int64

	faults []fault
	router *mux.Router
}

type fault struct {
	method string
	path   string
	status int
}

func New(opts Options) *Backend {
	if opts.Secret == "" {
		opts.Secret = "dev-secret"
	}
	if opts.AdminEmail == "" {
		opts.AdminEmail = "admin@shop.test"
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = "Passw0rd!"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	b := &Backend{
		opts:          opts,
		products:      newTable(func(p *domain.Product, id int64) { p.ID = id }),
		collections:   newTable(func(c *domain.Collection, id int64) { c.ID = id }),
		clothingTypes: newTable(func(t *domain.ClothingType, id int64) { t.ID = id }),
		colors:        newTable(func(c *domain.Color, id int64) { c.ID = id }),
		sizes:         newTable(func(s *domain.Size, id int64) { s.ID = id }),
		news:          newTable(func(n *domain.News, id int64) { n.ID = id }),
		newsTypes:     newTable(func(t *domain.NewsType, id int64) { t.ID = id }),
		tags:          newTable(func(t *domain.Tag, id int64) { t.ID = id }),
		banners:       newTable(func(m *domain.MainBanner, id int64) { m.ID = id }),
		orders:        newTable(func(o *domain.Order, id int64) { o.ID = id }),
	}
	b.router = b.routes()
	return b
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) { b.router.ServeHTTP(w, r) }

// FailNext makes the next request matching method and path answer with status.
func (b *Backend) FailNext(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults = append(b.faults, fault{method: method, path: "/" + strings.TrimLeft(path, "/"), status: status})
}

func (b *Backend) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		for i, f := range b.faults {
			if f.method == r.Method && f.path == r.URL.Path {
				b.faults = append(b.faults[:i], b.faults[i+1:]...)
				b.mu.Unlock()
				fail(w, f.status, http.StatusText(f.status))
				return
			}
		}
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(b.injectFaults)
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/user/login", b.login).Methods(http.MethodPost)
	api.HandleFunc("/user/auth", b.requireAdmin(b.check)).Methods(http.MethodGet)
	api.HandleFunc("/user/me", b.requireAdmin(b.me)).Methods(http.MethodGet)

	api.HandleFunc("/product", b.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/product/{id:[0-9]+}", b.getProduct).Methods(http.MethodGet)
	api.HandleFunc("/product", b.requireAdmin(b.createProduct)).Methods(http.MethodPost)
	api.HandleFunc("/product/{id:[0-9]+}", b.requireAdmin(b.updateProduct)).Methods(http.MethodPut)
	api.HandleFunc("/product/{id:[0-9]+}", b.requireAdmin(b.deleteProduct)).Methods(http.MethodDelete)
	api.HandleFunc("/product/{id:[0-9]+}/media/{mediaId:[0-9]+}", b.requireAdmin(b.deleteProductMedia)).Methods(http.MethodDelete)

	api.HandleFunc("/clothing-type", b.listClothingTypes).Methods(http.MethodGet)
	api.HandleFunc("/clothing-type/statistics", b.clothingTypeStatistics).Methods(http.MethodGet)
	api.HandleFunc("/clothing-type/{id:[0-9]+}", b.getClothingType).Methods(http.MethodGet)
	api.HandleFunc("/clothing-type", b.requireAdmin(b.createClothingType)).Methods(http.MethodPost)
	api.HandleFunc("/clothing-type/create-defaults", b.requireAdmin(b.defaultClothingTypes)).Methods(http.MethodPost)
	api.HandleFunc("/clothing-type/{id:[0-9]+}", b.requireAdmin(b.updateClothingType)).Methods(http.MethodPut)
	api.HandleFunc("/clothing-type/{id:[0-9]+}", b.requireAdmin(b.deleteClothingType)).Methods(http.MethodDelete)

	api.HandleFunc("/color", b.listColors).Methods(http.MethodGet)
	api.HandleFunc("/color", b.requireAdmin(b.createColor)).Methods(http.MethodPost)
	api.HandleFunc("/color/create-defaults", b.requireAdmin(b.defaultColors)).Methods(http.MethodPost)
	api.HandleFunc("/color/{id:[0-9]+}", b.requireAdmin(b.updateColor)).Methods(http.MethodPut)
	api.HandleFunc("/color/{id:[0-9]+}", b.requireAdmin(b.deleteColor)).Methods(http.MethodDelete)
	api.HandleFunc("/color/product/{id:[0-9]+}", b.requireAdmin(b.addProductColors)).Methods(http.MethodPost)
	api.HandleFunc("/color/product/{id:[0-9]+}/color/{colorId:[0-9]+}", b.requireAdmin(b.removeProductColor)).Methods(http.MethodDelete)

	api.HandleFunc("/size", b.listSizes).Methods(http.MethodGet)
	api.HandleFunc("/size", b.requireAdmin(b.createSize)).Methods(http.MethodPost)
	api.HandleFunc("/size/create-defaults", b.requireAdmin(b.defaultSizes)).Methods(http.MethodPost)
	api.HandleFunc("/size/{id:[0-9]+}", b.requireAdmin(b.updateSize)).Methods(http.MethodPut)
	api.HandleFunc("/size/{id:[0-9]+}", b.requireAdmin(b.deleteSize)).Methods(http.MethodDelete)
	api.HandleFunc("/size/product/{id:[0-9]+}", b.requireAdmin(b.addProductSizes)).Methods(http.MethodPost)
	api.HandleFunc("/size/product/{id:[0-9]+}/size/{sizeId:[0-9]+}", b.requireAdmin(b.removeProductSize)).Methods(http.MethodDelete)

	api.HandleFunc("/collection", b.listCollections).Methods(http.MethodGet)
	api.HandleFunc("/collection/{id:[0-9]+}", b.getCollection).Methods(http.MethodGet)
	api.HandleFunc("/collection/{id:[0-9]+}/products", b.listCollectionProducts).Methods(http.MethodGet)
	api.HandleFunc("/collection", b.requireAdmin(b.createCollection)).Methods(http.MethodPost)
	api.HandleFunc("/collection/{id:[0-9]+}", b.requireAdmin(b.updateCollection)).Methods(http.MethodPut)
	api.HandleFunc("/collection/{id:[0-9]+}", b.requireAdmin(b.deleteCollection)).Methods(http.MethodDelete)
	api.HandleFunc("/collection/{id:[0-9]+}/media/{mediaId:[0-9]+}", b.requireAdmin(b.deleteCollectionMedia)).Methods(http.MethodDelete)
	api.HandleFunc("/collection/{id:[0-9]+}/products/{productId:[0-9]+}", b.requireAdmin(b.addCollectionProduct)).Methods(http.MethodPost)
	api.HandleFunc("/collection/{id:[0-9]+}/products/{productId:[0-9]+}", b.requireAdmin(b.removeCollectionProduct)).Methods(http.MethodDelete)

	api.HandleFunc("/news", b.listNews).Methods(http.MethodGet)
	api.HandleFunc("/news/{id:[0-9]+}", b.getNews).Methods(http.MethodGet)
	api.HandleFunc("/news", b.requireAdmin(b.createNews)).Methods(http.MethodPost)
	api.HandleFunc("/news/{id:[0-9]+}", b.requireAdmin(b.updateNews)).Methods(http.MethodPut)
	api.HandleFunc("/news/{id:[0-9]+}", b.requireAdmin(b.deleteNews)).Methods(http.MethodDelete)
	api.HandleFunc("/news/{id:[0-9]+}/media/{mediaId:[0-9]+}", b.requireAdmin(b.deleteNewsMedia)).Methods(http.MethodDelete)

	api.HandleFunc("/news-type", b.listNewsTypes).Methods(http.MethodGet)
	api.HandleFunc("/news-type/counts", b.newsTypeCounts).Methods(http.MethodGet)
	api.HandleFunc("/news-type/{id:[0-9]+}", b.getNewsType).Methods(http.MethodGet)
	api.HandleFunc("/news-type", b.requireAdmin(b.createNewsType)).Methods(http.MethodPost)
	api.HandleFunc("/news-type/{id:[0-9]+}", b.requireAdmin(b.updateNewsType)).Methods(http.MethodPut)
	api.HandleFunc("/news-type/{id:[0-9]+}", b.requireAdmin(b.deleteNewsType)).Methods(http.MethodDelete)

	api.HandleFunc("/tag", b.listTags).Methods(http.MethodGet)
	api.HandleFunc("/tag/counts", b.tagCounts).Methods(http.MethodGet)
	api.HandleFunc("/tag/{id:[0-9]+}", b.getTag).Methods(http.MethodGet)
	api.HandleFunc("/tag", b.requireAdmin(b.createTag)).Methods(http.MethodPost)
	api.HandleFunc("/tag/{id:[0-9]+}", b.requireAdmin(b.updateTag)).Methods(http.MethodPut)
	api.HandleFunc("/tag/{id:[0-9]+}", b.requireAdmin(b.deleteTag)).Methods(http.MethodDelete)

	api.HandleFunc("/main-banner", b.requireAdmin(b.listBanners)).Methods(http.MethodGet)
	api.HandleFunc("/main-banner/active", b.activeBanner).Methods(http.MethodGet)
	api.HandleFunc("/main-banner/{id:[0-9]+}", b.requireAdmin(b.getBanner)).Methods(http.MethodGet)
	api.HandleFunc("/main-banner", b.requireAdmin(b.createBanner)).Methods(http.MethodPost)
	api.HandleFunc("/main-banner/{id:[0-9]+}", b.requireAdmin(b.updateBanner)).Methods(http.MethodPut)
	api.HandleFunc("/main-banner/{id:[0-9]+}", b.requireAdmin(b.deleteBanner)).Methods(http.MethodDelete)
	api.HandleFunc("/main-banner/{id:[0-9]+}/media/{mediaId:[0-9]+}", b.requireAdmin(b.deleteBannerMedia)).Methods(http.MethodDelete)

	api.HandleFunc("/order", b.requireAdmin(b.listOrders)).Methods(http.MethodGet)
	api.HandleFunc("/order/stats/overview", b.requireAdmin(b.orderStats)).Methods(http.MethodGet)
	api.HandleFunc("/order/{id:[0-9]+}", b.requireAdmin(b.getOrder)).Methods(http.MethodGet)
	api.HandleFunc("/order/{id:[0-9]+}/status", b.requireAdmin(b.updateOrderStatus)).Methods(http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fail(w, http.StatusNotFound, "not found")
	})
	return r
}

// ----- helpers -----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func ok(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func pathID(r *http.Request, key string) int64 {
	n, _ := strconv.ParseInt(mux.Vars(r)[key], 10, 64)
	return n
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

// paginate slices rows by ?page and ?limit.
func paginate[T any](r *http.Request, rows []T, defLimit int) ([]T, domain.Page) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defLimit)
	total := len(rows)
	p := domain.Page{TotalCount: total, CurrentPage: page, TotalPages: (total + limit - 1) / limit}
	from := (page - 1) * limit
	if from >= total {
		return []T{}, p
	}
	to := from + limit
	if to > total {
		to = total
	}
	return rows[from:to], p
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// table keeps rows in insertion order and lists newest first.
type table[T interface{ Key() int64 }] struct {
	rows  []T
	next  int64
	setID func(*T, int64)
}

func newTable[T interface{ Key() int64 }](setID func(*T, int64)) *table[T] {
	return &table[T]{setID: setID}
}

func (t *table[T]) insert(v T) T {
	if v.Key() == 0 {
		t.next++
		t.setID(&v, t.next)
	} else if v.Key() > t.next {
		t.next = v.Key()
	}
	t.rows = append(t.rows, v)
	return v
}

func (t *table[T]) get(id int64) (T, bool) {
	for _, v := range t.rows {
		if v.Key() == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) put(v T) bool {
	for i := range t.rows {
		if t.rows[i].Key() == v.Key() {
			t.rows[i] = v
			return true
		}
	}
	return false
}

func (t *table[T]) remove(id int64) bool {
	for i := range t.rows {
		if t.rows[i].Key() == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return true
		}
	}
	return false
}

func (t *table[T]) list(keep func(T) bool) []T {
	out := make([]T, 0, len(t.rows))
	for i := len(t.rows) - 1; i >= 0; i-- {
		if keep == nil || keep(t.rows[i]) {
			out = append(out, t.rows[i])
		}
	}
	return out
}
