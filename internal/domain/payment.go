package domain

import "time"

// Payment statuses. Only administrators move a payment out of "pending".
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentRejected = "rejected"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentVerified || s == PaymentRejected
}

// Payment records a client-asserted transaction. TransactionID is globally
// unique; the database constraint is the authoritative duplicate guard.
type Payment struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	TransactionID string    `json:"transaction_id"`
	TotalCents    int64     `json:"-"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`

	Items []PaymentItem `json:"items,omitempty"`
}

// PaymentItem mirrors the order-item snapshot on the payment side.
type PaymentItem struct {
	ID         string  `json:"id"`
	PaymentID  string  `json:"payment_id"`
	ProductID  *string `json:"product_id,omitempty"`
	Name       string  `json:"product_name"`
	PriceCents int64   `json:"-"`
	Quantity   int     `json:"quantity"`
}
