package order

import (
	"context"

	"storefront/internal/domain"
)

// SnapshotItem is a line captured at order-creation time.
type SnapshotItem struct {
	ProductID  *string
	Name       string
	PriceCents int64
	Quantity   int
}

// CreateOrderInput records an order directly, outside the checkout flow.
type CreateOrderInput struct {
	UserID        string
	TransactionID string
	TotalCents    int64
	Items         []SnapshotItem
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// HasPurchased reports whether any order of the user contains the product.
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}
