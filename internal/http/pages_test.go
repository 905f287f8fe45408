package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"shopadmin/internal/domain"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestProductsListShowsBackendRows(t *testing.T) {
	app := newApp(t, appOpts{})
	app.backend.PutProduct(domain.Product{Name: "Linen shirt", Gender: domain.GenderMan, PriceKZT: 15000, PriceUSD: 30})
	app.login(t)

	resp, body := app.get(t, "/admin/products")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Linen shirt") || !strings.Contains(body, "15000.00") {
		t.Fatalf("product row missing; body=%s", body)
	}
}

func TestProductCreateUploadsMedia(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)

	resp := app.postMultipart(t, "/admin/products", map[string]string{
		"name": "Wool coat", "gender": "WOMAN", "priceKZT": "60000", "priceUSD": "120",
	}, upload{name: "front.png", mime: "image/png", data: pngHeader})
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/admin/products" {
		t.Fatalf("expected 303 to the list, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	_, body := app.get(t, "/admin/products?modal=view&id=1")
	if !strings.Contains(body, "Wool coat") || !strings.Contains(body, "front.png") {
		t.Fatalf("created product or its media missing; body=%s", body)
	}
}

func TestProductFormErrorsStayInline(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)

	resp := app.postMultipart(t, "/admin/products", map[string]string{
		"name": "No gender", "priceKZT": "1", "priceUSD": "1",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body := bodyOf(resp)
	if !strings.Contains(body, "Choose a gender.") || !strings.Contains(body, `value="No gender"`) {
		t.Fatalf("form should reopen filled in with the alert; body=%s", body)
	}
}

func TestColorCreateThenDuplicateIsInline(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)

	resp := app.post(t, "/admin/colors", url.Values{"name": {"Red"}, "hexCode": {"#ff0000"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	_, body := app.get(t, "/admin/colors")
	if !strings.Contains(body, "#FF0000") {
		t.Fatalf("hex code should be stored upper-case; body=%s", body)
	}

	resp = app.post(t, "/admin/colors", url.Values{"name": {"Red"}, "hexCode": {"#FF0000"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected backend 400 to be shown inline, got %d", resp.StatusCode)
	}
	if body := bodyOf(resp); !strings.Contains(body, "color already exists") {
		t.Fatalf("backend message missing; body=%s", body)
	}
}

func TestColorBadHexNeverReachesBackend(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)

	resp := app.post(t, "/admin/colors", url.Values{"name": {"Odd"}, "hexCode": {"red"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if _, body := app.get(t, "/admin/colors"); strings.Contains(body, "<td>Odd</td>") {
		t.Fatalf("invalid color was created; body=%s", body)
	}
}

func TestClothingTypeInUseDeleteIsInline(t *testing.T) {
	app := newApp(t, appOpts{})
	ct := app.backend.PutClothingType(domain.ClothingType{Name: "Jackets"})
	app.backend.PutProduct(domain.Product{Name: "Parka", Gender: domain.GenderMan, ClothingTypeID: &ct.ID})
	app.login(t)
	app.get(t, "/admin/clothing-types")

	resp := app.post(t, fmt.Sprintf("/admin/clothing-types/%d/delete", ct.ID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 inline, got %d", resp.StatusCode)
	}
	body := bodyOf(resp)
	if !strings.Contains(body, "cannot be deleted") || !strings.Contains(body, "Jackets") {
		t.Fatalf("conflict alert or row missing; body=%s", body)
	}
}

func TestBackendFailureRendersUnavailable(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)
	app.backend.FailNext("GET", "/api/product", http.StatusInternalServerError)

	resp, body := app.get(t, "/admin/products")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Service unavailable") {
		t.Fatalf("server error page missing; body=%s", body)
	}
	if strings.Contains(body, "Internal Server Error") {
		t.Fatalf("backend detail leaked; body=%s", body)
	}
}

func TestOrderStatusUpdateKeepsNotes(t *testing.T) {
	app := newApp(t, appOpts{})
	o := app.backend.PutOrder(domain.Order{
		RecipientName: "Aigerim", RecipientAddress: "Abay 1", PaymentMethod: domain.PaymentCard,
		TotalKZT: 50000, TotalUSD: 100, Notes: "leave at the door",
	})
	app.login(t)

	resp := app.post(t, fmt.Sprintf("/admin/orders/%d/status", o.ID), url.Values{"status": {"SHIPPED"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	got, _ := app.backend.Order(o.ID)
	if got.Status != domain.OrderShipped || got.Notes != "leave at the door" {
		t.Fatalf("unexpected order after update: %+v", got)
	}

	resp = app.post(t, fmt.Sprintf("/admin/orders/%d/status", o.ID), url.Values{"status": {"LOST"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status, got %d", resp.StatusCode)
	}
}

func TestOrdersPageShowsStatistics(t *testing.T) {
	app := newApp(t, appOpts{})
	app.backend.PutOrder(domain.Order{PaymentMethod: domain.PaymentCash, TotalKZT: 1000, TotalUSD: 2})
	app.backend.PutOrder(domain.Order{PaymentMethod: domain.PaymentCard, Status: domain.OrderPaid, TotalKZT: 3000, TotalUSD: 6})
	app.login(t)

	resp, body := app.get(t, "/admin/orders")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Revenue, KZT") || !strings.Contains(body, "3000.00") {
		t.Fatalf("statistics panel missing; body=%s", body)
	}
	if strings.Contains(body, "4000.00") {
		t.Fatalf("unpaid orders should not count as revenue; body=%s", body)
	}
}

func TestCollectionAddProduct(t *testing.T) {
	app := newApp(t, appOpts{})
	col := app.backend.PutCollection(domain.Collection{Name: "Summer"})
	p := app.backend.PutProduct(domain.Product{Name: "Sandals", Gender: domain.GenderWoman})
	app.login(t)

	resp := app.post(t, fmt.Sprintf("/admin/collections/%d/products", col.ID), url.Values{"productId": {fmt.Sprint(p.ID)}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	_, body := app.get(t, fmt.Sprintf("/admin/collections?modal=products&id=%d", col.ID))
	if !strings.Contains(body, "<td>Sandals</td>") {
		t.Fatalf("product not listed in the collection; body=%s", body)
	}
}

func TestBannerCreateNeedsMedia(t *testing.T) {
	app := newApp(t, appOpts{})
	app.login(t)

	resp := app.postMultipart(t, "/admin/banners", map[string]string{"title": "Sale"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp = app.postMultipart(t, "/admin/banners", map[string]string{"title": "Sale", "isActive": "on"},
		upload{name: "hero.png", mime: "image/png", data: pngHeader})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	_, body := app.get(t, "/admin/banners")
	if !strings.Contains(body, "Active on the storefront: <b>Sale</b>") {
		t.Fatalf("active banner missing; body=%s", body)
	}
}

func TestNewsCreate(t *testing.T) {
	app := newApp(t, appOpts{})
	nt := app.backend.PutNewsType(domain.NewsType{Name: "Announcements"})
	tag := app.backend.PutTag(domain.Tag{Name: "launch", Color: "#3B82F6"})
	app.login(t)

	resp := app.postMultipart(t, "/admin/news", map[string]string{
		"title": "We are open", "content": "Doors open at ten.", "newsTypeId": fmt.Sprint(nt.ID),
		"tagIds": fmt.Sprint(tag.ID), "links": "https://shop.test/open\n\n",
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", resp.StatusCode, bodyOf(resp))
	}
	_, body := app.get(t, "/admin/news")
	if !strings.Contains(body, "We are open") {
		t.Fatalf("news row missing; body=%s", body)
	}
}
