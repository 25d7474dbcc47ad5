package domain

import "time"

// Order statuses. "pending" is set at checkout; the rest are applied by
// administrators.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses is the closed set accepted by the status update operation.
var OrderStatuses = []string{
	OrderPending,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	for _, known := range OrderStatuses {
		if known == s {
			return true
		}
	}
	return false
}

// Order is the durable record created at checkout. Immutable afterwards
// except for Status.
type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	TransactionID string    `json:"transaction_id"`
	TotalCents    int64     `json:"-"`
	Status        string    `json:"status"`
	ItemCount     int       `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a line-item snapshot captured at transaction time. ProductID
// may be nil if the catalog product was deleted later.
type OrderItem struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	ProductID  *string `json:"product_id,omitempty"`
	Name       string  `json:"product_name"`
	PriceCents int64   `json:"-"`
	Quantity   int     `json:"quantity"`
}
