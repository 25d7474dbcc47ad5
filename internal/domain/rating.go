package domain

import "time"

// ProductRating is one user's score for one product. Unique per
// (product, user); every write or delete recomputes the product's mean.
type ProductRating struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Score     int       `json:"score"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
