package payment

import (
	"context"

	"storefront/internal/domain"
)

// SnapshotItem is a line captured at transaction time. ProductID is nil when
// the catalog product is missing or already deleted.
type SnapshotItem struct {
	ProductID  *string
	Name       string
	PriceCents int64
	Quantity   int
}

// CreateWithOrderInput describes the payment and its parallel order record.
type CreateWithOrderInput struct {
	UserID        string
	TransactionID string
	TotalCents    int64
	Items         []SnapshotItem
}

// CreateWithOrderResult returns the ids minted by the checkout transaction.
type CreateWithOrderResult struct {
	PaymentID string
	OrderID   string
	Status    string
}

type Repository interface {
	// CreateWithOrder atomically records the payment, the order, and both
	// line-item snapshots. Returns domain.ErrConflict when the transaction id
	// is already taken, even if the duplicate lands mid-race.
	CreateWithOrder(ctx context.Context, in CreateWithOrderInput) (*CreateWithOrderResult, error)
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
