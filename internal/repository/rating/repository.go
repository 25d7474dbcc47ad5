package rating

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.ProductRating, error)
	GetByProductAndUser(ctx context.Context, productID, userID string) (*domain.ProductRating, error)
	// Upsert writes or replaces the (product, user) rating and recomputes the
	// product's denormalized average in the same transaction. Returns the new
	// average.
	Upsert(ctx context.Context, productID, userID string, score int, review string) (float64, error)
	// Delete removes the (product, user) rating and recomputes the average,
	// down to 0.0 when no ratings remain.
	Delete(ctx context.Context, productID, userID string) error
}
