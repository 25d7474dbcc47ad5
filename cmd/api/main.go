package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	cartrepo "storefront/internal/repository/cart"
	orderrepo "storefront/internal/repository/order"
	paymentrepo "storefront/internal/repository/payment"
	productrepo "storefront/internal/repository/product"
	ratingrepo "storefront/internal/repository/rating"
	tokenrepo "storefront/internal/repository/token"
	userrepo "storefront/internal/repository/user"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
	ratingsvc "storefront/internal/service/rating"
	"storefront/pkg/rabbitmq"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var events *rabbitmq.Client
	if cfg.AMQPURL != "" {
		events, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.AMQPURL})
		if err != nil {
			logger.Fatalf("connect to rabbitmq: %v", err)
		}
		defer events.Close()
	}

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	paymentRepo := paymentrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	ratingRepo := ratingrepo.NewPostgres(dbpool)

	accountService := accountsvc.New(userRepo, tokenRepo)
	catalogService := catalogsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	checkoutService := checkoutsvc.New(paymentRepo, productRepo, publisher(events), logger)
	orderService := ordersvc.New(orderRepo, productRepo, publisher(events), logger)
	ratingService := ratingsvc.New(ratingRepo, productRepo, orderRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Accounts:      accountService,
		Catalog:       catalogService,
		Carts:         cartService,
		Checkout:      checkoutService,
		Orders:        orderService,
		Ratings:       ratingService,
		CORSOrigins:   cfg.CORSOrigins,
		SessionCookie: cfg.SessionCookie,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

type eventPublisher interface {
	Publish(key string, payload interface{}) error
}

// publisher hides the typed-nil pitfall: a nil *rabbitmq.Client must become a
// nil interface so services skip publishing.
func publisher(c *rabbitmq.Client) eventPublisher {
	if c == nil {
		return nil
	}
	return c
}
