package httpserver

import (
	"context"
	"errors"
	"log"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
	ratingsvc "storefront/internal/service/rating"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountService interface {
	Register(ctx context.Context, in accountsvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in accountsvc.UpdateProfileInput) (*domain.User, error)
}

type catalogService interface {
	List(ctx context.Context, in catalogsvc.ListInput) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in catalogsvc.UpsertInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogsvc.UpsertInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type cartService interface {
	Resolve(ctx context.Context, ident cartsvc.Identity) (*domain.Cart, error)
	AddItem(ctx context.Context, cart *domain.Cart, productID string, quantity int) (*domain.Product, int, error)
	View(ctx context.Context, cart *domain.Cart) (*cartsvc.View, error)
	UpdateItem(ctx context.Context, cart *domain.Cart, itemID string, quantity int) (int, error)
	RemoveItem(ctx context.Context, cart *domain.Cart, itemID string) (int, error)
	Clear(ctx context.Context, cart *domain.Cart) error
	Merge(ctx context.Context, cart *domain.Cart, lines []cartsvc.MergeLine) (int, error)
}

type checkoutService interface {
	Submit(ctx context.Context, in checkoutsvc.SubmitInput) (*checkoutsvc.SubmitResult, error)
	History(ctx context.Context, userID string) ([]domain.Payment, error)
	All(ctx context.Context) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, paymentID, status string) error
}

type orderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	History(ctx context.Context, userID string) ([]domain.Order, error)
	All(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

type ratingService interface {
	ProductRatings(ctx context.Context, productID string) (*ratingsvc.Summary, error)
	Mine(ctx context.Context, productID, userID string) (*ratingsvc.MyRating, error)
	Submit(ctx context.Context, productID, userID string, score int, review string) (*ratingsvc.SubmitResult, error)
	Delete(ctx context.Context, productID, userID string) error
}

// Deps bundles the services the router depends on, plus the knobs that shape
// the HTTP surface.
type Deps struct {
	Accounts accountService
	Catalog  catalogService
	Carts    cartService
	Checkout checkoutService
	Orders   orderService
	Ratings  ratingService

	CORSOrigins   []string
	SessionCookie string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Accounts == nil || deps.Catalog == nil || deps.Carts == nil ||
		deps.Checkout == nil || deps.Orders == nil || deps.Ratings == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}
	if deps.SessionCookie == "" {
		deps.SessionCookie = "cart_session"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = deps.CORSOrigins
		corsCfg.AllowCredentials = true
		corsCfg.AddAllowHeaders("Authorization")
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.Use(authenticate(deps.Accounts))

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", handleRegister(deps.Accounts))
	auth.POST("/login", handleLogin(deps.Accounts))
	auth.POST("/logout", requireAuth(), handleLogout(deps.Accounts))
	auth.GET("/profile", requireAuth(), handleProfile(deps.Accounts))
	auth.PATCH("/profile", requireAuth(), handleUpdateProfile(deps.Accounts))

	products := api.Group("/products")
	products.GET("", handleListProducts(deps.Catalog))
	products.GET("/:id", handleGetProduct(deps.Catalog))
	products.POST("", requireAdmin(), handleCreateProduct(deps.Catalog))
	products.PUT("/:id", requireAdmin(), handleUpdateProduct(deps.Catalog))
	products.DELETE("/:id", requireAdmin(), handleDeleteProduct(deps.Catalog))

	carts := api.Group("/cart")
	carts.POST("/add", handleCartAdd(deps.Carts, deps.SessionCookie))
	carts.GET("/view", handleCartView(deps.Carts, deps.SessionCookie))
	carts.POST("/clear", handleCartClear(deps.Carts, deps.SessionCookie))
	carts.PATCH("/item/:id/update", handleCartItemUpdate(deps.Carts, deps.SessionCookie))
	carts.DELETE("/item/:id/delete", handleCartItemDelete(deps.Carts, deps.SessionCookie))
	carts.POST("/merge", requireAuth(), handleCartMerge(deps.Carts, deps.SessionCookie))

	payments := api.Group("/payments")
	payments.POST("/submit", requireAuth(), handlePaymentSubmit(deps.Checkout))
	payments.GET("/history", requireAuth(), handlePaymentHistory(deps.Checkout))
	payments.GET("/all", requireAdmin(), handlePaymentsAll(deps.Checkout))
	payments.PATCH("/:id/status", requireAdmin(), handlePaymentStatus(deps.Checkout))

	orders := api.Group("/orders")
	orders.GET("", requireAuth(), handleOrderHistory(deps.Orders))
	orders.POST("/create", requireAuth(), handleOrderCreate(deps.Orders))
	orders.GET("/all", requireAdmin(), handleOrdersAll(deps.Orders))
	orders.PATCH("/:id/status", requireAdmin(), handleOrderStatus(deps.Orders))

	ratings := api.Group("/ratings")
	ratings.GET("/:productID", handleProductRatings(deps.Ratings))
	ratings.GET("/:productID/mine", requireAuth(), handleMyRating(deps.Ratings))
	ratings.POST("/:productID/submit", requireAuth(), handleSubmitRating(deps.Ratings))
	ratings.PUT("/:productID/submit", requireAuth(), handleSubmitRating(deps.Ratings))
	ratings.DELETE("/:productID/delete", requireAuth(), handleDeleteRating(deps.Ratings))

	return router, nil
}
