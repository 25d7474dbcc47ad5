package domain

import "time"

// Cart holds pending purchase lines. Exactly one of UserID/AnonymousID is
// set: a cart with a nil UserID is a guest cart addressed by its anonymous
// session id.
type Cart struct {
	ID          string    `json:"id"`
	UserID      *string   `json:"user_id,omitempty"`
	AnonymousID *string   `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartItem is a single (cart, product) line. At most one exists per pair;
// repeated adds increment Quantity.
type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cart_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartLine is a cart item joined with its live product for display.
type CartLine struct {
	ItemID       string
	ProductID    string
	ProductTitle string
	PriceCents   int64
	Quantity     int
}
