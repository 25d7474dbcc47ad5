package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

func TestCartAdd_SetsSessionCookieForGuest(t *testing.T) {
	deps := testDeps()
	carts := deps.Carts.(*stubCarts)
	carts.addProduct = &domain.Product{ID: "prod-1", Title: "Headphones"}
	carts.count = 2
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"product_id":"prod-1","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "Added Headphones to cart!" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["cart_count"] != float64(2) {
		t.Fatalf("unexpected cart_count: %v", body["cart_count"])
	}

	cookie := ""
	for _, c := range rec.Result().Cookies() {
		if c.Name == "cart_session" {
			cookie = c.Value
		}
	}
	if cookie != "anon-1" {
		t.Fatalf("expected cart_session cookie anon-1, got %q", cookie)
	}
}

func TestCartAdd_ReusesExistingSessionCookie(t *testing.T) {
	deps := testDeps()
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"product_id":"prod-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "anon-1"})
	rec := httptest.NewRecorder()

	deps.Carts.(*stubCarts).addProduct = &domain.Product{ID: "prod-1", Title: "Headphones"}
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "cart_session" {
			t.Fatalf("cookie re-set although session matches cart")
		}
	}

	carts := deps.Carts.(*stubCarts)
	if len(carts.resolved) != 1 || carts.resolved[0].SessionID != "anon-1" {
		t.Fatalf("session id not passed to resolve: %+v", carts.resolved)
	}
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	deps := testDeps()
	deps.Carts.(*stubCarts).err = domain.NotFound("Product not found")
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"product_id":"missing"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Product not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCartView_RendersLinesAndTotals(t *testing.T) {
	deps := testDeps()
	deps.Carts.(*stubCarts).view = &cartsvc.View{
		Items: []domain.CartLine{
			{ItemID: "item-1", ProductID: "prod-1", ProductTitle: "Headphones", PriceCents: 12999, Quantity: 2},
		},
		GrandTotalCents: 25998,
		Count:           2,
	}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/view", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Items []struct {
			ProductName  string  `json:"product_name"`
			ProductPrice float64 `json:"product_price"`
			ItemTotal    float64 `json:"item_total"`
		} `json:"items"`
		GrandTotal float64 `json:"grand_total"`
		CartCount  int     `json:"cart_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].ProductPrice != 129.99 || body.Items[0].ItemTotal != 259.98 {
		t.Fatalf("unexpected items: %+v", body.Items)
	}
	if body.GrandTotal != 259.98 || body.CartCount != 2 {
		t.Fatalf("unexpected totals: %+v", body)
	}
}

func TestCartItemUpdate_ForbiddenForForeignItem(t *testing.T) {
	deps := testDeps()
	deps.Carts.(*stubCarts).err = domain.Forbidden("Item does not belong to your cart.")
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPatch, "/api/cart/item/item-9/update", strings.NewReader(`{"quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCartMerge_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/merge", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartMerge_ReturnsMergedCount(t *testing.T) {
	deps := testDeps()
	userID := "user-1"
	deps.Accounts = &stubAccounts{user: &domain.User{ID: userID, Username: "alice"}}
	carts := deps.Carts.(*stubCarts)
	carts.cart = &domain.Cart{ID: "cart-1", UserID: &userID}
	carts.merged = 2
	router := newTestRouter(t, deps)

	body := `{"items":[{"product_id":"prod-1","quantity":1},{"product_id":"prod-2","quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/merge", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["merged_count"] != float64(2) {
		t.Fatalf("unexpected merged_count: %v", resp["merged_count"])
	}
	if len(carts.resolved) != 1 || carts.resolved[0].UserID != userID {
		t.Fatalf("merge did not resolve the user cart: %+v", carts.resolved)
	}
}
