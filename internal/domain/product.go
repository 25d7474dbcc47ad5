package domain

import "time"

// Categories is the closed set of product categories.
var Categories = []string{
	"Electronics",
	"Jewelry",
	"Men's Clothing",
	"Women's Clothing",
	"Liquor",
	"Sale",
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"-"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image,omitempty"`
	// Rating is the denormalized mean of all rating scores, rounded to one
	// decimal, 0.0 when no ratings exist.
	Rating    float64   `json:"rating"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
