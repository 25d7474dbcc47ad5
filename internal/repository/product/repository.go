package product

import (
	"context"

	"storefront/internal/domain"
)

// Filter narrows and orders catalog listings. Zero values mean "no filter".
type Filter struct {
	Category string
	Search   string
	MinCents *int64
	MaxCents *int64
	Ordering string // price_asc, price_desc, name_asc, rating
}

// UpsertProductInput carries the admin-editable catalog fields.
type UpsertProductInput struct {
	Title       string
	Description string
	PriceCents  int64
	Category    string
	ImageURL    string
	Images      []string
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in UpsertProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpsertProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
