package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"shopadmin/internal/domain"
)

// every admin page requires a live session
func TestAdminGuardRequiresSession(t *testing.T) {
	app := newApp(t, appOpts{})

	for _, path := range []string{"/admin/products", "/admin/orders", "/admin/news", "/admin/banners"} {
		resp, body := app.get(t, path)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 anonymous, got %d", path, resp.StatusCode)
		}
		if !strings.Contains(body, "Sign in required") {
			t.Fatalf("%s: sign-in page missing; body=%s", path, body)
		}
	}

	app.sid = "forged-session-id"
	if resp, _ := app.get(t, "/admin/products"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown sid, got %d", resp.StatusCode)
	}

	app.sid = ""
	app.login(t)
	if resp, _ := app.get(t, "/admin/products"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 signed in, got %d", resp.StatusCode)
	}
}

func TestAdminHomeShowsCounts(t *testing.T) {
	app := newApp(t, appOpts{})
	app.backend.PutProduct(domain.Product{Name: "One", Gender: domain.GenderMan})
	app.backend.PutProduct(domain.Product{Name: "Two", Gender: domain.GenderWoman})
	app.backend.PutOrder(domain.Order{PaymentMethod: domain.PaymentCash})
	app.login(t)

	resp, body := app.get(t, "/admin")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{
		"Signed in as <b>admin</b>",
		"<span>Products</span><b>2</b>",
		"<span>Orders</span><b>1</b>",
		"<span>Colors</span><b>0</b>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q; body=%s", want, body)
		}
	}
}

// a backend 401 mid-session signs the admin out
func TestBackendUnauthorizedEndsSession(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)
	app.backend.FailNext("GET", "/api/color", http.StatusUnauthorized)

	resp, _ := app.get(t, "/admin/colors")
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if resp, _ := app.get(t, "/admin/colors"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected the session to be gone, got %d", resp.StatusCode)
	}
}

func TestTokenNearExpiryIsRefreshed(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)
	a, err := app.auth.Current(app.sid)
	if err != nil {
		t.Fatal(err)
	}
	app.auth.Now = func() time.Time { return a.ExpiresAt.Add(-time.Minute) }

	var resp *http.Response
	entries := captureLogs(t, func() {
		resp, _ = app.get(t, "/admin/colors")
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if _, ok := findLog(entries, "auth.refresh"); !ok {
		t.Fatalf("expected a refresh, got %+v", entries)
	}
	cur, err := app.auth.Current(app.sid)
	if err != nil || cur == a {
		t.Fatalf("session should hold the renewed admin, got %v %v", cur, err)
	}
}

func TestRefreshRejectedEndsSession(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)
	a, err := app.auth.Current(app.sid)
	if err != nil {
		t.Fatal(err)
	}
	app.auth.Now = func() time.Time { return a.ExpiresAt.Add(-time.Minute) }
	app.backend.FailNext("GET", "/api/user/auth", http.StatusUnauthorized)

	resp, _ := app.get(t, "/admin/colors")
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if _, err := app.auth.Current(app.sid); err == nil {
		t.Fatal("session should be gone")
	}
}
