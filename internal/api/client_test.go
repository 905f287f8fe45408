package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/domain"
)

// recorder is a tiny backend that remembers the last request it served.
type recorder struct {
	last *http.Request
	body []byte
}

func newBackend(t *testing.T, routes func(r *mux.Router, rec *recorder)) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec.last = req
			next.ServeHTTP(w, req)
		})
	})
	routes(r, rec)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second), rec
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginSendsJSONWithoutToken(t *testing.T) {
	c, rec := newBackend(t, func(r *mux.Router, rec *recorder) {
		r.HandleFunc("/api/user/login", func(w http.ResponseWriter, req *http.Request) {
			rec.body, _ = io.ReadAll(req.Body)
			reply(w, http.StatusOK, map[string]string{"token": "t-1"})
		}).Methods(http.MethodPost)
	})

	tok, err := c.WithToken("stale").Login(context.Background(), "admin@shop.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", tok)
	assert.Empty(t, rec.last.Header.Get("Authorization"), "login is a public call")
	assert.JSONEq(t, `{"email":"admin@shop.test","password":"secret1"}`, string(rec.body))
}

func TestAuthorizedCallsCarryBearer(t *testing.T) {
	c, rec := newBackend(t, func(r *mux.Router, _ *recorder) {
		r.HandleFunc("/api/user/auth", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, map[string]string{"token": "t-2"})
		})
	})

	tok, err := c.WithToken("t-1").Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t-2", tok)
	assert.Equal(t, "Bearer t-1", rec.last.Header.Get("Authorization"))
}

func TestCreateProductIsMultipart(t *testing.T) {
	c, rec := newBackend(t, func(r *mux.Router, _ *recorder) {
		r.HandleFunc("/api/product", func(w http.ResponseWriter, req *http.Request) {
			if err := req.ParseMultipartForm(1 << 20); err != nil {
				reply(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
				return
			}
			reply(w, http.StatusCreated, domain.Product{ID: 7, Name: req.FormValue("name")})
		}).Methods(http.MethodPost)
	})

	ct := int64(3)
	p, err := c.WithToken("t").CreateProduct(context.Background(), ProductInput{
		Name: "Tee", Gender: domain.GenderMan, PriceKZT: 5000, PriceUSD: 10.5,
		ClothingTypeID: &ct, SizeIDs: []int64{1, 2},
		Media: []File{{Name: "a.png", ContentType: "image/png", Data: []byte("png")}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)

	form := rec.last.MultipartForm
	require.NotNil(t, form)
	assert.Equal(t, []string{"Tee"}, form.Value["name"])
	assert.Equal(t, []string{"10.5"}, form.Value["priceUSD"])
	assert.Equal(t, []string{"3"}, form.Value["clothingTypeId"])
	assert.Equal(t, []string{"[1,2]"}, form.Value["sizeIds"])
	assert.Equal(t, []string{"[]"}, form.Value["colorIds"])
	assert.NotContains(t, form.Value, "collectionId")
	require.Len(t, form.File[MediaField], 1)
	assert.Equal(t, "a.png", form.File[MediaField][0].Filename)
}

func TestErrorClassification(t *testing.T) {
	c, _ := newBackend(t, func(r *mux.Router, _ *recorder) {
		r.HandleFunc("/api/color", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusBadRequest, map[string]string{"message": "color already exists"})
		}).Methods(http.MethodPost)
		r.HandleFunc("/api/color", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/user/auth", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
		})
	})
	ctx := context.Background()

	_, err := c.CreateColor(ctx, ColorInput{Name: "Red", HexCode: "#FF0000"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.False(t, IsServerError(err))
	assert.Equal(t, "color already exists", err.Error())

	_, err = c.ListColors(ctx)
	require.Error(t, err)
	assert.True(t, IsServerError(err))
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Equal(t, "Bad Gateway", err.Error())

	_, err = c.Check(ctx)
	assert.True(t, IsUnauthorized(err))
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).ListColors(context.Background())
	require.Error(t, err)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindNetwork, ae.Kind())
	assert.True(t, IsServerError(err))
}

func TestCancelledContextSendsNothing(t *testing.T) {
	c, rec := newBackend(t, func(r *mux.Router, _ *recorder) {
		r.HandleFunc("/api/color", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, []domain.Color{})
		})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListColors(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsCanceled(err))
	assert.False(t, IsServerError(err))
	assert.Nil(t, rec.last)
}
