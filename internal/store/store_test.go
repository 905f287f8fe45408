package store_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
	"shopadmin/internal/mockapi"
	"shopadmin/internal/store"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// backend starts a mock backend and returns it with a logged-in client.
func backend(t *testing.T) (*mockapi.Backend, *api.Client) {
	t.Helper()
	b := mockapi.New(mockapi.Options{Now: func() time.Time { return fixedNow }})
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	c := api.New(srv.URL, 5*time.Second)
	tok, err := c.Login(context.Background(), "admin@shop.test", "Passw0rd!")
	require.NoError(t, err)
	return b, c.WithToken(tok)
}

func TestColors_CreateAddsToFront(t *testing.T) {
	b, c := backend(t)
	b.PutColor(domain.Color{Name: "Black", HexCode: "#000000"})
	b.PutColor(domain.Color{Name: "White", HexCode: "#FFFFFF"})
	s := store.NewColors(c)
	ctx := context.Background()

	require.NoError(t, s.Fetch(ctx))
	before := len(s.Items())

	red, err := s.Create(ctx, api.ColorInput{Name: "Red", HexCode: "#FF0000"})
	require.NoError(t, err)
	assert.NotZero(t, red.ID)

	items := s.Items()
	require.Len(t, items, before+1)
	assert.Equal(t, "Red", items[0].Name)
	assert.Equal(t, "#FF0000", items[0].HexCode)
	assert.Equal(t, before+1, s.Page().TotalCount)

	got, ok := s.ByHex("#ff0000")
	require.True(t, ok)
	assert.Equal(t, red.ID, got.ID)
}

func TestColors_CreateDefaultsRefetches(t *testing.T) {
	_, c := backend(t)
	s := store.NewColors(c)

	n, err := s.CreateDefaults(context.Background())
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Len(t, s.Items(), n)
}

func TestClothingTypes_DeleteInUseIsValidationError(t *testing.T) {
	b, c := backend(t)
	b.PutClothingType(domain.ClothingType{ID: 5, Name: "Jackets"})
	typeID := int64(5)
	b.PutProduct(domain.Product{Name: "Parka", Gender: domain.GenderMan, PriceKZT: 1, PriceUSD: 1, ClothingTypeID: &typeID})
	s := store.NewClothingTypes(c)
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx))

	err := s.Delete(ctx, 5)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	assert.False(t, api.IsServerError(err))
	assert.Equal(t, 409, api.StatusOf(err))

	msg, server := s.Err()
	assert.NotEmpty(t, msg)
	assert.False(t, server)
	_, ok := s.Find(5)
	assert.True(t, ok)
	assert.Equal(t, 1, s.Page().TotalCount)
	assert.False(t, s.Loading())
}

func TestClothingTypes_Statistics(t *testing.T) {
	b, c := backend(t)
	tee := b.PutClothingType(domain.ClothingType{Name: "T-shirts"})
	b.PutProduct(domain.Product{Name: "Tee", Gender: domain.GenderMan, ClothingTypeID: &tee.ID})
	s := store.NewClothingTypes(c)

	require.NoError(t, s.LoadStatistics(context.Background()))
	stats := s.Statistics()
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].ProductCount)
}

func TestOrders_UpdateStatusChangesOnlyStatus(t *testing.T) {
	b, c := backend(t)
	b.PutOrder(domain.Order{
		ID: 42, UserID: 7, Status: domain.OrderCreated, RecipientName: "Aigerim",
		RecipientAddress: "Abay ave 1", PaymentMethod: domain.PaymentCash, TotalKZT: 5000, TotalUSD: 10,
		Notes: "ring twice",
	})
	s := store.NewOrders(c)
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, api.OrderParams{}))
	before, ok := s.Find(42)
	require.True(t, ok)

	after, err := s.UpdateStatus(ctx, 42, domain.OrderShipped, "")
	require.NoError(t, err)

	want := before
	want.Status = domain.OrderShipped
	assert.Equal(t, want, after)
	cached, _ := s.Find(42)
	assert.Equal(t, want, cached)

	stored, _ := b.Order(42)
	assert.Equal(t, domain.OrderShipped, stored.Status)
	assert.Equal(t, "ring twice", stored.Notes)
}

func TestOrders_LoadStatsHasItsOwnFlag(t *testing.T) {
	b, c := backend(t)
	b.PutOrder(domain.Order{Status: domain.OrderPaid, PaymentMethod: domain.PaymentCard, TotalKZT: 100, TotalUSD: 1})
	b.PutOrder(domain.Order{Status: domain.OrderCancelled, PaymentMethod: domain.PaymentCard, TotalKZT: 900, TotalUSD: 9})
	s := store.NewOrders(c)

	require.NoError(t, s.LoadStats(context.Background(), "", ""))
	assert.False(t, s.StatsLoading())
	assert.False(t, s.Loading())

	st, ok := s.Stats()
	require.True(t, ok)
	assert.Equal(t, 2, st.TotalOrders)
	assert.Equal(t, 100.0, st.TotalRevenue.TotalKZT)
	assert.Equal(t, 1, st.CountFor(domain.OrderCancelled))
}

func TestProducts_ConcurrentDeletes(t *testing.T) {
	b, c := backend(t)
	p1 := b.PutProduct(domain.Product{Name: "One", Gender: domain.GenderMan})
	p2 := b.PutProduct(domain.Product{Name: "Two", Gender: domain.GenderWoman})
	s := store.NewProducts(c)
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, api.ProductFilters{}))
	require.Len(t, s.Items(), 2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{p1.ID, p2.ID} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			errs[i] = s.Delete(ctx, id)
		}(i, id)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Page().TotalCount)
	assert.False(t, s.Loading())
}

func TestProducts_FailedFetchKeepsList(t *testing.T) {
	b, c := backend(t)
	b.PutProduct(domain.Product{Name: "Keep me", Gender: domain.GenderMan})
	s := store.NewProducts(c)
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, api.ProductFilters{}))

	b.FailNext("GET", "/api/product", 500)
	err := s.Fetch(ctx, api.ProductFilters{})
	require.Error(t, err)

	assert.Len(t, s.Items(), 1)
	msg, server := s.Err()
	assert.NotEmpty(t, msg)
	assert.True(t, server)
	assert.False(t, s.Loading())
}

func TestProducts_UnreachableBackendIsServerError(t *testing.T) {
	srv := httptest.NewServer(mockapi.New(mockapi.Options{}))
	srv.Close()
	s := store.NewProducts(api.New(srv.URL, time.Second))

	err := s.Fetch(context.Background(), api.ProductFilters{})
	require.Error(t, err)
	_, server := s.Err()
	assert.True(t, server)
	assert.NotNil(t, s.Items())
}

func TestProducts_CancelledFetchRecordsNoError(t *testing.T) {
	b, c := backend(t)
	b.PutProduct(domain.Product{Name: "Keep me", Gender: domain.GenderMan})
	s := store.NewProducts(c)
	require.NoError(t, s.Fetch(context.Background(), api.ProductFilters{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Fetch(ctx, api.ProductFilters{})
	require.Error(t, err)
	assert.True(t, api.IsCanceled(err))
	msg, server := s.Err()
	assert.Empty(t, msg)
	assert.False(t, server)
	assert.Len(t, s.Items(), 1)
	assert.False(t, s.Loading())
}

func TestProducts_CreateSendsMultipartAndDeleteMedia(t *testing.T) {
	_, c := backend(t)
	s := store.NewProducts(c)
	ctx := context.Background()

	p, err := s.Create(ctx, api.ProductInput{
		Name: "Cap", Gender: domain.GenderMan, PriceKZT: 4990, PriceUSD: 10,
		Media: []api.File{{Name: "cap.png", ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n")}},
	})
	require.NoError(t, err)
	require.Len(t, p.MediaFiles, 1)
	assert.Equal(t, "cap.png", p.MediaFiles[0].OriginalName)

	_, err = s.Load(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, s.DeleteMedia(ctx, p.ID, p.MediaFiles[0].ID))

	cached, _ := s.Find(p.ID)
	assert.Empty(t, cached.MediaFiles)
	cur, _ := s.Current()
	assert.Empty(t, cur.MediaFiles)
}

func TestCollections_AddProductReloadsCurrent(t *testing.T) {
	b, c := backend(t)
	col := b.PutCollection(domain.Collection{Name: "Summer"})
	p := b.PutProduct(domain.Product{Name: "Shorts", Gender: domain.GenderMan})
	s := store.NewCollections(c)
	ctx := context.Background()

	require.NoError(t, s.FetchAvailable(ctx, 1, 10))
	require.Len(t, s.Products(), 1)

	require.NoError(t, s.AddProduct(ctx, col.ID, p.ID))
	cur, ok := s.Current()
	require.True(t, ok)
	require.Len(t, cur.Products, 1)
	assert.Equal(t, p.ID, cur.Products[0].ID)

	require.NoError(t, s.RemoveProduct(ctx, col.ID, p.ID))
	cur, _ = s.Current()
	assert.Empty(t, cur.Products)
}

func TestMainBanners_ActiveFollowsEdits(t *testing.T) {
	b, c := backend(t)
	banner := b.PutMainBanner(domain.MainBanner{Title: "Spring", IsActive: true})
	s := store.NewMainBanners(c)
	ctx := context.Background()

	require.NoError(t, s.Fetch(ctx, 1, 20))
	require.NoError(t, s.FetchActive(ctx))
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, banner.ID, active.ID)

	_, err := s.Update(ctx, banner.ID, api.MainBannerInput{Title: "Spring sale", IsActive: true})
	require.NoError(t, err)
	active, _ = s.Active()
	assert.Equal(t, "Spring sale", active.Title)

	require.NoError(t, s.Delete(ctx, banner.ID))
	_, ok = s.Active()
	assert.False(t, ok)
	assert.Empty(t, s.Items())
}

func TestMainBanners_NoActiveIsNotAnError(t *testing.T) {
	b, c := backend(t)
	b.PutMainBanner(domain.MainBanner{Title: "Winter", IsActive: false})
	s := store.NewMainBanners(c)

	require.NoError(t, s.FetchActive(context.Background()))
	_, ok := s.Active()
	assert.False(t, ok)
	msg, _ := s.Err()
	assert.Empty(t, msg)
}

func TestMainBanners_CreateSetsCurrent(t *testing.T) {
	_, c := backend(t)
	s := store.NewMainBanners(c)

	created, err := s.Create(context.Background(), api.MainBannerInput{
		Title: "Launch",
		Media: []api.File{{Name: "hero.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}},
	})
	require.NoError(t, err)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, created.ID, cur.ID)
}

func TestNewsTypes_DeleteInUseKeepsRow(t *testing.T) {
	b, c := backend(t)
	nt := b.PutNewsType(domain.NewsType{Name: "Drops"})
	b.PutNews(domain.News{Title: "Hello", Content: "x", NewsTypeID: nt.ID})
	s := store.NewNewsTypes(c)
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, 1, 10, ""))

	err := s.Delete(ctx, nt.ID)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	_, ok := s.ByName("drops")
	assert.True(t, ok)

	require.NoError(t, s.FetchWithCounts(ctx))
	counts := s.WithCounts()
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].NewsCount)
}

func TestSet_SubscribeSeesEveryStore(t *testing.T) {
	b, c := backend(t)
	b.PutSize(domain.Size{Name: "M"})
	b.PutTag(domain.Tag{Name: "sale", Color: "#FF5A5F"})
	set := store.NewSet(c)

	var (
		mu     sync.Mutex
		stores []string
	)
	cancel := set.Subscribe(func(ev store.Event) {
		mu.Lock()
		defer mu.Unlock()
		stores = append(stores, ev.Store)
	})
	ctx := context.Background()
	require.NoError(t, set.Sizes.Fetch(ctx))
	require.NoError(t, set.Tags.Fetch(ctx, 1, 10, ""))
	cancel()
	require.NoError(t, set.Sizes.Fetch(ctx))

	assert.Equal(t, []string{"sizes", "tags"}, stores)
}
