package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
)

func TestRegister_Created(t *testing.T) {
	deps := testDeps()
	deps.Accounts = &stubAccounts{register: &domain.User{ID: "user-1", Username: "alice", Email: "a@b.com"}}
	router := newTestRouter(t, deps)

	body := `{"username":"alice","email":"a@b.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"username":"alice"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegister_DuplicateConflict(t *testing.T) {
	deps := testDeps()
	deps.Accounts = &stubAccounts{regErr: domain.Conflict("A user with that username already exists.")}
	router := newTestRouter(t, deps)

	body := `{"username":"alice","email":"a@b.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLogin_ReturnsToken(t *testing.T) {
	deps := testDeps()
	deps.Accounts = &stubAccounts{user: &domain.User{ID: "user-1", Username: "alice"}}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["token"] != "token-123" || resp["username"] != "alice" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	deps := testDeps()
	deps.Accounts = &stubAccounts{loginErr: accountsvc.ErrInvalidCredentials}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProfile_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProfile_ReturnsUser(t *testing.T) {
	deps := authedDeps(&domain.User{ID: "user-1", Username: "alice", Email: "a@b.com"})
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/auth/profile", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"email":"a@b.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestProductWrites_AdminOnly(t *testing.T) {
	deps := authedDeps(&domain.User{ID: "user-1", Username: "alice"})
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/products", `{"title":"Thing","price":10}`))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin create, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/products/prod-1", ""))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin delete, got %d", rec.Code)
	}
}

func TestOrderStatus_UnknownStatusRejected(t *testing.T) {
	deps := authedDeps(&domain.User{ID: "admin-1", Username: "admin", IsAdmin: true})
	deps.Orders = &stubOrders{err: domain.Invalid("Invalid order status.")}
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/api/orders/order-1/status", `{"status":"completed"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid order status.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
