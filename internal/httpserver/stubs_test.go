package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
	ratingsvc "storefront/internal/service/rating"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubAccounts struct {
	user     *domain.User
	register *domain.User
	regErr   error
	loginErr error
}

func (s *stubAccounts) Register(_ context.Context, _ accountsvc.RegisterInput) (*domain.User, error) {
	return s.register, s.regErr
}

func (s *stubAccounts) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.user, "token-123", nil
}

func (s *stubAccounts) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	if s.user == nil {
		return nil, accountsvc.ErrInvalidToken
	}
	return s.user, nil
}

func (s *stubAccounts) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAccounts) Profile(_ context.Context, _ string) (*domain.User, error) {
	if s.user == nil {
		return nil, domain.ErrNotFound
	}
	return s.user, nil
}

func (s *stubAccounts) UpdateProfile(_ context.Context, _ string, _ accountsvc.UpdateProfileInput) (*domain.User, error) {
	return s.user, nil
}

type stubCatalog struct {
	products []domain.Product
	product  *domain.Product
	err      error
}

func (s *stubCatalog) List(_ context.Context, _ catalogsvc.ListInput) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) Get(_ context.Context, _ string) (*domain.Product, error) {
	if s.product == nil {
		return nil, domain.NotFound("Product not found")
	}
	return s.product, s.err
}

func (s *stubCatalog) Create(_ context.Context, _ catalogsvc.UpsertInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalog) Update(_ context.Context, _ string, _ catalogsvc.UpsertInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalog) Delete(_ context.Context, _ string) error { return s.err }

type stubCarts struct {
	cart       *domain.Cart
	addProduct *domain.Product
	count      int
	merged     int
	view       *cartsvc.View
	err        error

	resolved []cartsvc.Identity
}

func (s *stubCarts) Resolve(_ context.Context, ident cartsvc.Identity) (*domain.Cart, error) {
	s.resolved = append(s.resolved, ident)
	return s.cart, nil
}

func (s *stubCarts) AddItem(_ context.Context, _ *domain.Cart, _ string, _ int) (*domain.Product, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.addProduct, s.count, nil
}

func (s *stubCarts) View(_ context.Context, _ *domain.Cart) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCarts) UpdateItem(_ context.Context, _ *domain.Cart, _ string, _ int) (int, error) {
	return s.count, s.err
}

func (s *stubCarts) RemoveItem(_ context.Context, _ *domain.Cart, _ string) (int, error) {
	return s.count, s.err
}

func (s *stubCarts) Clear(_ context.Context, _ *domain.Cart) error { return s.err }

func (s *stubCarts) Merge(_ context.Context, _ *domain.Cart, _ []cartsvc.MergeLine) (int, error) {
	return s.merged, s.err
}

type stubCheckout struct {
	result  *checkoutsvc.SubmitResult
	history []domain.Payment
	all     []domain.Payment
	err     error
}

func (s *stubCheckout) Submit(_ context.Context, _ checkoutsvc.SubmitInput) (*checkoutsvc.SubmitResult, error) {
	return s.result, s.err
}

func (s *stubCheckout) History(_ context.Context, _ string) ([]domain.Payment, error) {
	return s.history, s.err
}

func (s *stubCheckout) All(_ context.Context) ([]domain.Payment, error) {
	return s.all, s.err
}

func (s *stubCheckout) UpdateStatus(_ context.Context, _, _ string) error { return s.err }

type stubOrders struct {
	order   *domain.Order
	history []domain.Order
	all     []domain.Order
	err     error
}

func (s *stubOrders) Create(_ context.Context, _ ordersvc.CreateInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrders) History(_ context.Context, _ string) ([]domain.Order, error) {
	return s.history, s.err
}

func (s *stubOrders) All(_ context.Context) ([]domain.Order, error) {
	return s.all, s.err
}

func (s *stubOrders) UpdateStatus(_ context.Context, _, _ string) error { return s.err }

type stubRatings struct {
	summary   *ratingsvc.Summary
	mine      *ratingsvc.MyRating
	submit    *ratingsvc.SubmitResult
	submitErr error
	deleteErr error
}

func (s *stubRatings) ProductRatings(_ context.Context, _ string) (*ratingsvc.Summary, error) {
	if s.summary == nil {
		return nil, errors.New("unexpected call")
	}
	return s.summary, nil
}

func (s *stubRatings) Mine(_ context.Context, _, _ string) (*ratingsvc.MyRating, error) {
	return s.mine, nil
}

func (s *stubRatings) Submit(_ context.Context, _, _ string, _ int, _ string) (*ratingsvc.SubmitResult, error) {
	return s.submit, s.submitErr
}

func (s *stubRatings) Delete(_ context.Context, _, _ string) error { return s.deleteErr }

func testDeps() Deps {
	guestID := "anon-1"
	return Deps{
		Accounts: &stubAccounts{},
		Catalog:  &stubCatalog{},
		Carts: &stubCarts{
			cart:  &domain.Cart{ID: "cart-1", AnonymousID: &guestID},
			view:  &cartsvc.View{},
			count: 1,
		},
		Checkout:      &stubCheckout{},
		Orders:        &stubOrders{},
		Ratings:       &stubRatings{},
		SessionCookie: "cart_session",
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}
