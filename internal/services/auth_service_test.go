package services_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"shopadmin/internal/api"
	"shopadmin/internal/mockapi"
	"shopadmin/internal/repos"
	"shopadmin/internal/services"
	"shopadmin/internal/store"
)

func newAuth(t *testing.T, now time.Time) (*services.AuthService, *repos.SessionRepo) {
	t.Helper()
	backend := mockapi.New(mockapi.Options{Now: func() time.Time { return now }, TokenTTL: time.Hour})
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	sessions := repos.NewSessionRepo(db, repos.NewSealer("test-secret"))
	svc := services.NewAuthService(api.New(srv.URL, 5*time.Second), sessions)
	svc.Now = func() time.Time { return now }
	return svc, sessions
}

func TestAuthService_LoginBindsSession(t *testing.T) {
	now := time.Now().UTC()
	svc, sessions := newAuth(t, now)

	a, err := svc.Login(context.Background(), "sid-1", "admin@shop.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if a.Email != "admin@shop.test" || a.Role != "ADMIN" || a.Client.Token() == "" {
		t.Fatalf("unexpected admin %+v", a)
	}
	if !a.ExpiresAt.After(now) {
		t.Fatalf("expiry not read from token: %v", a.ExpiresAt)
	}
	s, err := sessions.Get("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if s.Token != a.Client.Token() {
		t.Fatal("stored token differs from the client's")
	}
}

func TestAuthService_BadCredentials(t *testing.T) {
	svc, _ := newAuth(t, time.Now().UTC())
	_, err := svc.Login(context.Background(), "sid-1", "admin@shop.test", "wrong")
	if !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
}

func TestAuthService_CurrentRestoresAfterRestart(t *testing.T) {
	now := time.Now().UTC()
	svc, sessions := newAuth(t, now)
	a, err := svc.Login(context.Background(), "sid-1", "admin@shop.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}

	// a second service over the same table stands in for a restarted process
	fresh := services.NewAuthService(svc.API, sessions)
	fresh.Now = func() time.Time { return now }
	got, err := fresh.Current("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Client.Token() != a.Client.Token() {
		t.Fatal("restored session has another token")
	}
	if got.Stores == nil || got.Stores.Products == nil {
		t.Fatal("restored session has no stores")
	}
}

func TestAuthService_ExpiredSessionIsDropped(t *testing.T) {
	now := time.Now().UTC()
	svc, sessions := newAuth(t, now)
	if _, err := svc.Login(context.Background(), "sid-1", "admin@shop.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	svc.Now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := svc.Current("sid-1"); !errors.Is(err, services.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
	if _, err := sessions.Get("sid-1"); err == nil {
		t.Fatal("expired session still stored")
	}
}

func TestAuthService_PurgeEvictsMemoryAndRows(t *testing.T) {
	now := time.Now().UTC()
	svc, _ := newAuth(t, now)
	if _, err := svc.Login(context.Background(), "sid-1", "admin@shop.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	n, err := svc.PurgeExpired(now.Add(2 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 purged row, got %d", n)
	}
	// a clock still inside the token's lifetime must not find a cached admin either
	if _, err := svc.Current("sid-1"); !errors.Is(err, services.ErrNoSession) {
		t.Fatalf("want ErrNoSession after purge, got %v", err)
	}
}

func TestAuthService_LogoutAndEvents(t *testing.T) {
	svc, _ := newAuth(t, time.Now().UTC())
	var seen []store.Event
	svc.OnEvent = func(_ *services.Admin, ev store.Event) { seen = append(seen, ev) }

	a, err := svc.Login(context.Background(), "sid-1", "admin@shop.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Stores.Sizes.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0].Store != "sizes" {
		t.Fatalf("want one sizes event, got %+v", seen)
	}

	if err := svc.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Current("sid-1"); !errors.Is(err, services.ErrNoSession) {
		t.Fatalf("want ErrNoSession after logout, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newAuth(t, time.Now().UTC())
	a, err := svc.Login(context.Background(), "sid-1", "admin@shop.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Refresh(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	cur, err := svc.Current("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if cur != b {
		t.Fatal("refresh did not replace the cached admin")
	}
}
